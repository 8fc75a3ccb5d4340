// Package constants provides shared constants for CLI commands.
package constants

// Shell type constants for completion commands.
const (
	// ShellBash represents the Bash shell.
	ShellBash = "bash"

	// ShellZsh represents the Zsh shell.
	ShellZsh = "zsh"

	// ShellFish represents the Fish shell.
	ShellFish = "fish"

	// ShellPowerShell represents PowerShell.
	ShellPowerShell = "powershell"
)

// Shells lists the shells completion scripts can be generated for.
var Shells = []string{ShellBash, ShellZsh, ShellFish, ShellPowerShell}
