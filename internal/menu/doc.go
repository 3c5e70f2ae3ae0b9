// Package menu implements the numbered, line-based menu of the tracklib
// command. It reads choices and prompts from any io.Reader, so it runs the
// same against a terminal, a pipe, or a test string.
package menu
