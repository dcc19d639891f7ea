package main

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ironsheep/image-editor/internal/dispatch"
	"github.com/ironsheep/image-editor/internal/editor"
	"github.com/ironsheep/image-editor/internal/imaging"
)

// errReported marks a failure whose JSON result has already been written.
var errReported = errors.New("result already reported")

var errLoad = errors.New("failed to load image")

type execOptions struct {
	input   string
	output  string
	format  string
	quality int
	params  string
}

func newExecCmd() *cobra.Command {
	var opts execOptions

	cmd := &cobra.Command{
		Use:   "exec <command>",
		Short: "Run one command and print its result as JSON",
		Long: "Load --input (a file path, or base64 data when no such file exists), run one command\n" +
			"and print a single JSON result on stdout.\n\n" +
			"Commands: " + strings.Join(dispatch.Commands, ", "),
		Example: `  image-editor exec info --input photo.png
  image-editor exec crop --input photo.png --params '{"x":10,"y":10,"width":200,"height":100}'
  image-editor exec save --input photo.png --output out/photo.jpg --format JPEG --quality 80`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var res dispatch.Result
			if len(args) != 1 {
				res = dispatch.Failure(errors.Errorf("expected exactly one command, got %d", len(args)))
			} else {
				res = runExec(args[0], opts)
			}
			return writeResult(cmd.OutOrStdout(), res)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.input, "input", "", "input image: file path or base64 data")
	f.StringVar(&opts.output, "output", "", "output file path for save; omit to print a data URL")
	f.StringVar(&opts.format, "format", string(imaging.FormatPNG), "output format for save: PNG, JPEG, BMP, GIF or TIFF")
	f.IntVar(&opts.quality, "quality", imaging.DefaultQuality, "JPEG quality for save (1-100)")
	f.StringVar(&opts.params, "params", "", "command parameters as a JSON object")

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		if werr := writeResult(c.OutOrStdout(), dispatch.Failure(err)); werr != nil {
			return werr
		}
		return errReported
	})
	return cmd
}

// runExec loads the input, parses the parameters and runs command on a fresh
// processor.
func runExec(command string, opts execOptions) dispatch.Result {
	proc := editor.NewProcessor()

	if opts.input != "" {
		if err := dispatch.LoadInput(proc, opts.input); err != nil {
			editor.Logger().Warn("load failed", "error", err)
			return dispatch.Failure(errLoad)
		}
	}

	params, err := dispatch.ParseParams(opts.params)
	if err != nil {
		return dispatch.Failure(err)
	}

	return dispatch.New(proc).Execute(dispatch.Request{
		Command: command,
		Params:  params,
		Output:  opts.output,
		Format:  opts.format,
		Quality: opts.quality,
	})
}

func writeResult(w io.Writer, res dispatch.Result) error {
	return json.NewEncoder(w).Encode(res)
}
