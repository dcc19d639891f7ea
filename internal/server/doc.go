// Package server implements the MCP (Model Context Protocol) server for the
// image editor.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Sessions
//
// Editing is stateful. image_open loads an image and returns a UUID session
// handle; every other tool takes that handle and acts on the session's
// current image and its own undo history. Sessions live until image_close or
// process exit. Commands on one session are serialised; separate sessions are
// independent.
//
// # Available Tools
//
// Session management:
//   - image_open: Load a file path or base64 payload, returns session + info
//   - image_close: Drop a session
//   - image_command: Run any command by name with a params object
//
// One tool per editing command, taking "session" plus the command's
// parameters at the top level:
//   - image_crop, image_rotate, image_flip_horizontal, image_flip_vertical
//   - image_add_text, image_draw_rectangle, image_draw_circle, image_draw_line
//   - image_save, image_info, image_undo, image_redo, image_sample_color
//
// # Errors
//
// Command failures are ordinary results with "success": false and an
// "error" message. Unknown tools and unknown sessions are JSON-RPC errors
// with code -32000; malformed tools/call params use -32602.
package server
