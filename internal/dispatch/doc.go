// Package dispatch maps named commands with a flat JSON parameter object onto
// editor.Processor calls and turns the outcome into a Result.
//
// Supported commands and their parameters (defaults in parentheses):
//
//	crop             x (0), y (0), width (100), height (100)
//	rotate           angle (0), degrees clockwise
//	flip_horizontal
//	flip_vertical
//	add_text         text (""), x (0), y (0), font_size (24), color ("black"), font_path
//	draw_rectangle   x1 (0), y1 (0), x2 (100), y2 (100), outline_color ("black"), fill_color, width (2)
//	draw_circle      x (50), y (50), radius (25), outline_color ("black"), fill_color, width (2)
//	draw_line        x1 (0), y1 (0), x2 (100), y2 (100), color ("black"), width (2)
//	save             uses Request.Output, Request.Format (PNG) and Request.Quality (95)
//	info
//	undo
//	redo
//	sample_color     x (0), y (0)
//
// Every call to Execute returns a Result, including for unknown commands,
// bad parameters and internal failures.
package dispatch
