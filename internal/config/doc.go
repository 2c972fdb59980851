// Package config loads tailpane's TOML configuration.
//
// The default location is ~/.config/tailpane/config.toml. A missing file is
// not an error; Load returns Default(). Every key is optional:
//
//	height_limit   = 3000    # trim once the rendered height reaches this
//	new_height     = 2500    # height to trim back to
//	row_height     = 1       # height units per terminal row
//	top_inset      = 0       # height units above the first row
//	tracking       = true    # start with auto-tail on
//	log_level      = "info"
//	producers      = 2       # demo goroutines writing random paragraphs
//	interval       = "250ms" # pause between demo paragraphs
//	follow_file    = "~/app.log"
//	backfill_lines = 200     # lines of follow_file shown on start
//
// Load validates the result. A bad height pair, a non-positive row height or
// a negative producer count fails with an error wrapping
// keeper.ErrInvalidArgument, so callers can test it with errors.Is.
//
// Paths beginning with ~ are expanded against the user's home directory.
package config
