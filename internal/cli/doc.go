// Package cli wires settings, logging and the library into the tracklib
// cobra command tree.
//
// The root command takes exactly one track file and opens the line menu, or
// the Bubble Tea interface with --tui. The export, scan and stats
// subcommands run once and exit. Errors are returned to the caller; only
// main decides the exit status.
package cli
