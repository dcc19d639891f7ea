package server

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"

	"github.com/ironsheep/image-editor/internal/dispatch"
	"github.com/ironsheep/image-editor/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_open", "image_crop").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// commandTools maps each per-command tool name to its dispatcher command.
var commandTools = func() map[string]string {
	m := make(map[string]string, len(dispatch.Commands))
	for _, c := range dispatch.Commands {
		m[commandToolName(c)] = c
	}
	return m
}()

func commandToolName(command string) string {
	return "image_" + command
}

// sessionArgs are the keys shared by every session tool. They are removed
// from the command parameters before dispatch.
type sessionArgs struct {
	Session string `json:"session"`
	Output  string `json:"output"`
	Format  string `json:"format"`
	Quality int    `json:"quality"`
}

var reservedKeys = []string{"session", "output", "format", "quality"}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// A command that fails is still a successful call whose result has
// "success": false. Unknown tools and sessions return a JSON-RPC error
// response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_open":
		return s.handleOpen(args)
	case "image_close":
		return s.handleClose(args)
	case "image_command":
		return s.handleCommand(args)
	}

	if command, ok := commandTools[name]; ok {
		return s.handleCommandTool(command, args)
	}
	return nil, errors.Errorf("unknown tool: %s", name)
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	resp := &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
		},
	}
	if data != "" {
		resp.Error.Data = data
	}
	return resp
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// unmarshalArgs decodes tool arguments, treating missing arguments as {}.
func unmarshalArgs(args json.RawMessage, v interface{}) error {
	if len(strings.TrimSpace(string(args))) == 0 {
		return nil
	}
	return json.Unmarshal(args, v)
}

// === Session Handlers ===

type openArgs struct {
	Input string `json:"input"`
}

// openResult is the image_open result: the new handle plus image info.
type openResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Session string `json:"session,omitempty"`

	*imaging.Info
}

func (s *Server) handleOpen(args json.RawMessage) (interface{}, error) {
	var a openArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Input == "" {
		return nil, errors.New("input is required")
	}

	id, info, err := s.sessions.Open(a.Input)
	if err != nil {
		return openResult{Success: false, Error: err.Error()}, nil
	}
	return openResult{Success: true, Session: id, Info: &info}, nil
}

func (s *Server) handleClose(args json.RawMessage) (interface{}, error) {
	var a sessionArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if !s.sessions.Close(a.Session) {
		return nil, errors.Wrapf(ErrUnknownSession, "%s", a.Session)
	}
	return dispatch.Result{Success: true}, nil
}

// === Command Handlers ===

type commandArgs struct {
	sessionArgs
	Command string          `json:"command"`
	Params  json.RawMessage `json:"params"`
}

func (s *Server) handleCommand(args json.RawMessage) (interface{}, error) {
	var a commandArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}

	params, err := dispatch.ParseParams(string(a.Params))
	if err != nil {
		// Reported like any other command failure, but only once the
		// session is known to exist.
		if _, serr := s.sessions.get(a.Session); serr != nil {
			return nil, serr
		}
		return dispatch.Failure(err), nil
	}

	return s.sessions.Execute(a.Session, dispatch.Request{
		Command: a.Command,
		Params:  params,
		Output:  a.Output,
		Format:  a.Format,
		Quality: a.Quality,
	})
}

// handleCommandTool runs one of the per-command tools, whose arguments are
// the session keys plus the command's own parameters at the top level.
func (s *Server) handleCommandTool(command string, args json.RawMessage) (interface{}, error) {
	var a sessionArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	params := dispatch.Params{}
	if err := unmarshalArgs(args, &params); err != nil {
		return nil, err
	}
	for _, k := range reservedKeys {
		delete(params, k)
	}

	return s.sessions.Execute(a.Session, dispatch.Request{
		Command: command,
		Params:  params,
		Output:  a.Output,
		Format:  a.Format,
		Quality: a.Quality,
	})
}
