package dispatch

import (
	"os"

	"github.com/pkg/errors"

	"github.com/ironsheep/image-editor/internal/editor"
	"github.com/ironsheep/image-editor/internal/imaging"
)

// Commands lists every command Execute understands, in catalog order.
var Commands = []string{
	"crop",
	"rotate",
	"flip_horizontal",
	"flip_vertical",
	"add_text",
	"draw_rectangle",
	"draw_circle",
	"draw_line",
	"save",
	"info",
	"undo",
	"redo",
	"sample_color",
}

// Request is one command invocation.
type Request struct {
	Command string
	Params  Params

	// Output, Format and Quality only apply to "save". An empty Output
	// returns the image as a data URL instead of writing a file.
	Output  string
	Format  string
	Quality int
}

// Result is the structured response to every command. It is always
// produced, whatever happened while executing the command.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`

	*imaging.Info

	Base64 string               `json:"base64,omitempty"`
	Color  *imaging.ColorResult `json:"color,omitempty"`
}

// Failure builds an unsuccessful Result.
func Failure(err error) Result {
	return Result{Success: false, Error: err.Error()}
}

// Dispatcher translates named commands into Processor calls.
// It holds no state of its own.
type Dispatcher struct {
	proc *editor.Processor
}

// New creates a dispatcher driving proc.
func New(proc *editor.Processor) *Dispatcher {
	return &Dispatcher{proc: proc}
}

// LoadInput loads input into proc. An existing file path is read from disk;
// anything else is treated as a base64 payload.
func LoadInput(proc *editor.Processor, input string) error {
	if fi, err := os.Stat(input); err == nil && !fi.IsDir() {
		return proc.LoadFile(input)
	}
	return proc.LoadString(input)
}

// Execute runs req and returns its result. It never panics.
func (d *Dispatcher) Execute(req Request) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Failure(errors.Errorf("internal error: %v", r))
		}
		editor.Logger().Debug("command executed", "command", req.Command, "success", res.Success, "error", res.Error)
	}()

	if req.Params == nil {
		req.Params = Params{}
	}
	rd := &reader{p: req.Params}

	switch req.Command {
	case "crop":
		x, y := rd.int("x", 0), rd.int("y", 0)
		w, h := rd.int("width", 100), rd.int("height", 100)
		return d.mutate(rd, func() error {
			return d.proc.Crop(x, y, w, h)
		})

	case "rotate":
		angle := rd.float("angle", 0)
		return d.mutate(rd, func() error {
			return d.proc.Rotate(angle)
		})

	case "flip_horizontal":
		return d.mutate(rd, d.proc.FlipHorizontal)

	case "flip_vertical":
		return d.mutate(rd, d.proc.FlipVertical)

	case "add_text":
		opts := editor.TextOptions{
			Text:     rd.string("text", ""),
			X:        rd.int("x", 0),
			Y:        rd.int("y", 0),
			FontSize: rd.float("font_size", imaging.DefaultFontSize),
			Color:    rd.color("color", "black"),
			FontPath: rd.string("font_path", ""),
		}
		return d.mutate(rd, func() error {
			return d.proc.AddText(opts)
		})

	case "draw_rectangle":
		opts := imaging.RectangleOptions{
			X1:         rd.int("x1", 0),
			Y1:         rd.int("y1", 0),
			X2:         rd.int("x2", 100),
			Y2:         rd.int("y2", 100),
			ShapeStyle: shapeStyle(rd),
		}
		return d.mutate(rd, func() error {
			return d.proc.DrawRectangle(opts)
		})

	case "draw_circle":
		opts := imaging.CircleOptions{
			X:          rd.int("x", 50),
			Y:          rd.int("y", 50),
			Radius:     rd.int("radius", 25),
			ShapeStyle: shapeStyle(rd),
		}
		return d.mutate(rd, func() error {
			return d.proc.DrawCircle(opts)
		})

	case "draw_line":
		opts := imaging.LineOptions{
			X1:    rd.int("x1", 0),
			Y1:    rd.int("y1", 0),
			X2:    rd.int("x2", 100),
			Y2:    rd.int("y2", 100),
			Color: rd.color("color", "black"),
			Width: rd.int("width", imaging.DefaultStrokeWidth),
		}
		return d.mutate(rd, func() error {
			return d.proc.DrawLine(opts)
		})

	case "save":
		return d.save(req)

	case "info":
		info, ok := d.proc.Info()
		if !ok {
			return Failure(editor.ErrNoImage)
		}
		return Result{Success: true, Info: &info}

	case "undo":
		return d.move(d.proc.Undo)

	case "redo":
		return d.move(d.proc.Redo)

	case "sample_color":
		x, y := rd.int("x", 0), rd.int("y", 0)
		if rd.err != nil {
			return Failure(rd.err)
		}
		c, err := d.proc.SampleColor(x, y)
		if err != nil {
			return Failure(err)
		}
		return Result{Success: true, Color: c}
	}

	return Failure(errors.Errorf("unknown command: %s", req.Command))
}

// mutate runs a mutating command once all of its parameters have been read.
// A bad parameter fails the command before the image is touched.
func (d *Dispatcher) mutate(rd *reader, op func() error) Result {
	if rd.err != nil {
		return Failure(rd.err)
	}
	if err := op(); err != nil {
		return Failure(err)
	}
	return d.withInfo(Result{Success: true})
}

// move runs undo or redo. Not moving is an unsuccessful result without an
// error message, except when no image is loaded.
func (d *Dispatcher) move(step func() bool) Result {
	if !d.proc.Loaded() {
		return Failure(editor.ErrNoImage)
	}
	if !step() {
		return Result{Success: false}
	}
	return d.withInfo(Result{Success: true})
}

func (d *Dispatcher) withInfo(res Result) Result {
	if info, ok := d.proc.Info(); ok {
		res.Info = &info
	}
	return res
}

func (d *Dispatcher) save(req Request) Result {
	name := req.Format
	if name == "" {
		name = string(imaging.FormatPNG)
	}
	format, err := imaging.ParseFormat(name)
	if err != nil {
		return Failure(err)
	}
	quality := req.Quality
	if quality == 0 {
		quality = imaging.DefaultQuality
	}

	if req.Output != "" {
		if err := d.proc.Save(req.Output, format, quality); err != nil {
			return Failure(err)
		}
		return Result{Success: true}
	}

	url, err := d.proc.Encode(format, quality)
	if err != nil {
		return Failure(err)
	}
	return Result{Success: true, Base64: url}
}

func shapeStyle(rd *reader) imaging.ShapeStyle {
	return imaging.ShapeStyle{
		Outline: rd.optionalColor("outline_color", "black"),
		Fill:    rd.optionalColor("fill_color", ""),
		Width:   rd.int("width", imaging.DefaultStrokeWidth),
	}
}
