package server

import "github.com/ironsheep/image-editor/internal/dispatch"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

type property map[string]interface{}

func integer(description string, def int) property {
	return property{"type": "integer", "description": description, "default": def}
}

func number(description string, def float64) property {
	return property{"type": "number", "description": description, "default": def}
}

func str(description string) property {
	return property{"type": "string", "description": description}
}

func colorProp(description, def string) property {
	p := property{
		"type":        []string{"string", "null"},
		"description": description + ". Accepts a name, #rgb, #rrggbb, #rrggbbaa, rgb(), rgba() or hsl()",
	}
	if def != "" {
		p["default"] = def
	}
	return p
}

var sessionProp = str("Session handle returned by image_open")

// schema builds an object schema.
func schema(props map[string]property, required ...string) map[string]interface{} {
	properties := make(map[string]interface{}, len(props))
	for k, v := range props {
		properties[k] = v
	}
	if required == nil {
		required = []string{}
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}

// sessionTool defines a tool that acts on an open session. It always
// requires "session".
func sessionTool(name, description string, props map[string]property, required ...string) Tool {
	if props == nil {
		props = map[string]property{}
	}
	props["session"] = sessionProp
	return Tool{
		Name:        name,
		Description: description,
		InputSchema: schema(props, append([]string{"session"}, required...)...),
	}
}

func shapeProps(props map[string]property) map[string]property {
	props["outline_color"] = colorProp("Outline color, null for none", "black")
	props["fill_color"] = colorProp("Fill color, omit or null for none", "")
	props["width"] = integer("Outline width in pixels", 2)
	return props
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Sessions
		{
			Name:        "image_open",
			Description: "Open an image for editing and return a session handle with the image info. The input is an image file path or a base64 payload, optionally wrapped as a data:image/...;base64, URL.",
			InputSchema: schema(map[string]property{
				"input": str("Image file path or base64 image data"),
			}, "input"),
		},
		sessionTool("image_close",
			"Close an editing session and release its image and history.", nil),
		{
			Name:        "image_command",
			Description: "Run any editing command on a session by name, with its parameters as a JSON object.",
			InputSchema: schema(map[string]property{
				"session": sessionProp,
				"command": {
					"type":        "string",
					"description": "Command name",
					"enum":        commandEnum(),
				},
				"params":  {"type": "object", "description": "Command parameters"},
				"output":  str("save only: output file path; omit to get a data URL"),
				"format":  str("save only: PNG, JPEG, BMP, GIF or TIFF"),
				"quality": integer("save only: JPEG quality 1-100", 95),
			}, "session", "command"),
		},

		// Geometry
		sessionTool("image_crop",
			"Crop to a rectangle. The rectangle is clamped to the image bounds.",
			map[string]property{
				"x":      integer("Left edge", 0),
				"y":      integer("Top edge", 0),
				"width":  integer("Width of the region", 100),
				"height": integer("Height of the region", 100),
			}),
		sessionTool("image_rotate",
			"Rotate clockwise by an angle in degrees. The canvas grows to fit and exposed corners are white.",
			map[string]property{
				"angle": number("Clockwise rotation in degrees", 0),
			}),
		sessionTool("image_flip_horizontal", "Mirror the image left to right.", nil),
		sessionTool("image_flip_vertical", "Mirror the image top to bottom.", nil),

		// Drawing
		sessionTool("image_add_text",
			"Draw text with its top-left corner at (x, y). Falls back to a built-in bitmap font when font_path cannot be loaded.",
			map[string]property{
				"text":      str("Text to draw"),
				"x":         integer("Left edge", 0),
				"y":         integer("Top edge", 0),
				"font_size": number("Font size in points", 24),
				"color":     colorProp("Text color", "black"),
				"font_path": str("Optional TrueType or OpenType font file"),
			}),
		sessionTool("image_draw_rectangle",
			"Draw a rectangle between two inclusive corners.",
			shapeProps(map[string]property{
				"x1": integer("First corner X", 0),
				"y1": integer("First corner Y", 0),
				"x2": integer("Second corner X", 100),
				"y2": integer("Second corner Y", 100),
			})),
		sessionTool("image_draw_circle",
			"Draw a circle from its center and radius.",
			shapeProps(map[string]property{
				"x":      integer("Center X", 50),
				"y":      integer("Center Y", 50),
				"radius": integer("Radius in pixels", 25),
			})),
		sessionTool("image_draw_line",
			"Draw a straight line between two points.",
			map[string]property{
				"x1":    integer("Start X", 0),
				"y1":    integer("Start Y", 0),
				"x2":    integer("End X", 100),
				"y2":    integer("End Y", 100),
				"color": colorProp("Line color", "black"),
				"width": integer("Line width in pixels", 2),
			}),

		// Output and state
		sessionTool("image_save",
			"Save the current image to a file, or return it as a data URL when no output path is given. JPEG output of transparent images is flattened onto white.",
			map[string]property{
				"output":  str("Output file path; parent directories are created"),
				"format":  str("PNG (default), JPEG, BMP, GIF or TIFF"),
				"quality": integer("JPEG quality 1-100", 95),
			}),
		sessionTool("image_info",
			"Return width, height, color mode, source format and whether the image has transparency.", nil),
		sessionTool("image_undo",
			"Step back one entry in the history. Returns success false when there is nothing to undo.", nil),
		sessionTool("image_redo",
			"Step forward one entry in the history. Returns success false when there is nothing to redo.", nil),
		sessionTool("image_sample_color",
			"Get the color of the pixel at (x, y) as RGB, RGBA, hex and HSL.",
			map[string]property{
				"x": integer("X coordinate", 0),
				"y": integer("Y coordinate", 0),
			}),
	}
}

func commandEnum() []string {
	return append([]string(nil), dispatch.Commands...)
}
