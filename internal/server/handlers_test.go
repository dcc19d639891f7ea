package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestImageFile creates a test image file and returns its path
func createTestImageFile(t *testing.T, width, height int, c color.Color) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "handler-test.png")
	require.NoError(t, os.WriteFile(path, encodeTestImage(t, width, height, c), 0o644))
	return path
}

func encodeTestImage(t *testing.T, width, height int, c color.Color) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// callTool sends a tools/call request and returns the raw response.
func callTool(t *testing.T, s *Server, name string, args interface{}) *MCPResponse {
	t.Helper()

	params, err := json.Marshal(map[string]interface{}{
		"name":      name,
		"arguments": args,
	})
	require.NoError(t, err)

	resp := s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  params,
	})
	require.NotNil(t, resp)
	return resp
}

// toolResult calls a tool that must succeed at the protocol level and
// decodes the JSON text content.
func toolResult(t *testing.T, s *Server, name string, args interface{}) map[string]interface{} {
	t.Helper()

	resp := callTool(t, s, name, args)
	require.Nil(t, resp.Error, "unexpected error: %+v", resp.Error)

	content := resp.Result.(map[string]interface{})["content"].([]map[string]interface{})
	require.Len(t, content, 1)
	assert.Equal(t, "text", content[0]["type"])

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(content[0]["text"].(string)), &out))
	return out
}

func openSession(t *testing.T, s *Server, width, height int) string {
	t.Helper()

	path := createTestImageFile(t, width, height, color.RGBA{255, 0, 0, 255})
	out := toolResult(t, s, "image_open", map[string]interface{}{"input": path})
	require.Equal(t, true, out["success"], out["error"])
	return out["session"].(string)
}

func TestHandleToolsCall_Open(t *testing.T) {
	s := New("")
	path := createTestImageFile(t, 100, 80, color.RGBA{255, 0, 0, 255})

	out := toolResult(t, s, "image_open", map[string]interface{}{"input": path})

	assert.Equal(t, true, out["success"])
	assert.NotEmpty(t, out["session"])
	assert.Equal(t, float64(100), out["width"])
	assert.Equal(t, float64(80), out["height"])
	assert.Equal(t, "PNG", out["format"])
	assert.Equal(t, 1, s.sessions.Len())
}

func TestHandleToolsCall_OpenBase64(t *testing.T) {
	s := New("")
	data := "data:image/png;base64," + base64.StdEncoding.EncodeToString(encodeTestImage(t, 12, 9, color.White))

	out := toolResult(t, s, "image_open", map[string]interface{}{"input": data})

	assert.Equal(t, true, out["success"])
	assert.Equal(t, float64(12), out["width"])
}

func TestHandleToolsCall_OpenFailure(t *testing.T) {
	s := New("")

	out := toolResult(t, s, "image_open", map[string]interface{}{"input": "definitely-not-an-image"})

	assert.Equal(t, false, out["success"])
	assert.Contains(t, out["error"], "failed to load image")
	assert.Equal(t, 0, s.sessions.Len())

	resp := callTool(t, s, "image_open", map[string]interface{}{})
	require.NotNil(t, resp.Error)
	assert.Equal(t, -32000, resp.Error.Code)
}

func TestHandleToolsCall_EditSequence(t *testing.T) {
	s := New("")
	session := openSession(t, s, 400, 300)

	out := toolResult(t, s, "image_crop", map[string]interface{}{
		"session": session, "x": 50, "y": 50, "width": 200, "height": 150,
	})
	require.Equal(t, true, out["success"], out["error"])
	assert.Equal(t, float64(200), out["width"])
	assert.Equal(t, float64(150), out["height"])

	out = toolResult(t, s, "image_rotate", map[string]interface{}{"session": session, "angle": 45})
	require.Equal(t, true, out["success"], out["error"])
	assert.Greater(t, out["width"].(float64), float64(200))

	out = toolResult(t, s, "image_undo", map[string]interface{}{"session": session})
	require.Equal(t, true, out["success"])
	assert.Equal(t, float64(200), out["width"])

	out = toolResult(t, s, "image_info", map[string]interface{}{"session": session})
	assert.Equal(t, float64(150), out["height"])
	assert.Equal(t, "RGB", out["mode"])
}

func TestHandleToolsCall_Drawing(t *testing.T) {
	s := New("")
	session := openSession(t, s, 100, 100)

	calls := []struct {
		tool string
		args map[string]interface{}
	}{
		{"image_draw_rectangle", map[string]interface{}{"x1": 10, "y1": 10, "x2": 40, "y2": 40, "fill_color": "white"}},
		{"image_draw_circle", map[string]interface{}{"outline_color": nil, "fill_color": "blue"}},
		{"image_draw_line", map[string]interface{}{"color": "#00ff00", "width": 4}},
		{"image_add_text", map[string]interface{}{"text": "hi", "x": 60, "y": 60}},
		{"image_flip_horizontal", map[string]interface{}{}},
		{"image_flip_vertical", map[string]interface{}{}},
	}

	for _, c := range calls {
		c.args["session"] = session
		out := toolResult(t, s, c.tool, c.args)
		assert.Equal(t, true, out["success"], "%s: %v", c.tool, out["error"])
	}

	out := toolResult(t, s, "image_sample_color", map[string]interface{}{"session": session, "x": 50, "y": 50})
	require.Equal(t, true, out["success"], out["error"])
	assert.NotNil(t, out["color"])
}

func TestHandleToolsCall_CommandFailureIsAResult(t *testing.T) {
	s := New("")
	session := openSession(t, s, 20, 20)

	out := toolResult(t, s, "image_crop", map[string]interface{}{"session": session, "x": "left"})
	assert.Equal(t, false, out["success"])
	assert.NotEmpty(t, out["error"])

	out = toolResult(t, s, "image_redo", map[string]interface{}{"session": session})
	assert.Equal(t, false, out["success"])
}

func TestHandleToolsCall_Save(t *testing.T) {
	s := New("")
	session := openSession(t, s, 20, 20)

	out := toolResult(t, s, "image_save", map[string]interface{}{"session": session, "format": "JPEG"})
	require.Equal(t, true, out["success"], out["error"])
	assert.Contains(t, out["base64"], "data:image/jpeg;base64,")

	path := filepath.Join(t.TempDir(), "saved", "out.png")
	out = toolResult(t, s, "image_save", map[string]interface{}{"session": session, "output": path})
	require.Equal(t, true, out["success"], out["error"])
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestHandleToolsCall_Command(t *testing.T) {
	s := New("")
	session := openSession(t, s, 60, 40)

	out := toolResult(t, s, "image_command", map[string]interface{}{
		"session": session,
		"command": "crop",
		"params":  map[string]interface{}{"width": 30, "height": 20},
	})
	require.Equal(t, true, out["success"], out["error"])
	assert.Equal(t, float64(30), out["width"])

	out = toolResult(t, s, "image_command", map[string]interface{}{
		"session": session,
		"command": "save",
		"format":  "bmp",
	})
	require.Equal(t, true, out["success"], out["error"])
	assert.Contains(t, out["base64"], "data:image/bmp;base64,")

	out = toolResult(t, s, "image_command", map[string]interface{}{"session": session, "command": "blur"})
	assert.Equal(t, false, out["success"])
	assert.Equal(t, "unknown command: blur", out["error"])

	out = toolResult(t, s, "image_command", map[string]interface{}{
		"session": session,
		"command": "crop",
		"params":  []int{1, 2},
	})
	assert.Equal(t, false, out["success"])
	assert.Contains(t, out["error"], "invalid parameters")
}

func TestHandleToolsCall_Close(t *testing.T) {
	s := New("")
	session := openSession(t, s, 10, 10)

	out := toolResult(t, s, "image_close", map[string]interface{}{"session": session})
	assert.Equal(t, true, out["success"])
	assert.Equal(t, 0, s.sessions.Len())

	resp := callTool(t, s, "image_info", map[string]interface{}{"session": session})
	require.NotNil(t, resp.Error)
	assert.Equal(t, -32000, resp.Error.Code)

	resp = callTool(t, s, "image_close", map[string]interface{}{"session": session})
	require.NotNil(t, resp.Error)
}

func TestHandleToolsCall_UnknownTool(t *testing.T) {
	resp := callTool(t, New(""), "image_ocr_full", map[string]interface{}{})

	require.NotNil(t, resp.Error)
	assert.Equal(t, -32000, resp.Error.Code)
	assert.Contains(t, resp.Error.Data, "unknown tool")
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := New("")
	resp := s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  json.RawMessage(`"not an object"`),
	})

	require.NotNil(t, resp.Error)
	assert.Equal(t, -32602, resp.Error.Code)
}

func TestHandleToolsCall_SessionsAreIndependent(t *testing.T) {
	s := New("")
	a := openSession(t, s, 50, 50)
	b := openSession(t, s, 50, 50)
	require.NotEqual(t, a, b)

	toolResult(t, s, "image_crop", map[string]interface{}{"session": a, "width": 10, "height": 10})

	out := toolResult(t, s, "image_info", map[string]interface{}{"session": b})
	assert.Equal(t, float64(50), out["width"])

	out = toolResult(t, s, "image_undo", map[string]interface{}{"session": b})
	assert.Equal(t, false, out["success"])
}
