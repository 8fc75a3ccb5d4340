// Package emoji provides symbol constants for CLI output.
package emoji

// Symbols used for status lines in terminal output.
const (
	// Success marks a completed operation or a clean validation.
	Success = "✓"

	// Error marks a failed operation.
	Error = "✗"

	// Stop marks a shutdown in progress.
	Stop = "■"

	// Warning marks a non-fatal problem, such as a dangling reference.
	Warning = "!"

	// Rocket marks a server that started listening.
	Rocket = "🚀"
)
