// Package completion generates and installs shell completion scripts.
package completion

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agentstation/vinoteca/internal/cmd/constants"
	"github.com/agentstation/vinoteca/internal/cmd/emoji"
	pkgconstants "github.com/agentstation/vinoteca/pkg/constants"
)

// Generate writes the completion script for shell to w.
func Generate(root *cobra.Command, shell string, w io.Writer) error {
	switch shell {
	case constants.ShellBash:
		return root.GenBashCompletionV2(w, true)
	case constants.ShellZsh:
		return root.GenZshCompletion(w)
	case constants.ShellFish:
		return root.GenFishCompletion(w, true)
	case constants.ShellPowerShell:
		return root.GenPowerShellCompletionWithDesc(w)
	default:
		return fmt.Errorf("unsupported shell: %s", shell)
	}
}

// Install writes the completion script for shell to the location returned by
// Path and reports the result to out.
func Install(root *cobra.Command, shell string, out io.Writer) error {
	targetPath, err := Path(shell, root.Name())
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(targetPath), pkgconstants.DirPermissions); err != nil {
		return fmt.Errorf("failed to create completion directory: %w", err)
	}

	file, err := os.Create(targetPath) // #nosec G304 - Path builds the location from fixed shell directories
	if err != nil {
		return fmt.Errorf("failed to create completion file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Fprintf(out, "Warning: failed to close file: %v\n", closeErr)
		}
	}()

	if err := Generate(root, shell, file); err != nil {
		return fmt.Errorf("failed to generate %s completion: %w", shell, err)
	}

	fmt.Fprintf(out, "%s %s completions installed to: %s\n", emoji.Success, shell, targetPath)
	fmt.Fprintln(out, "Start a new shell session to enable completions.")
	return nil
}

// Uninstall removes a script written by Install. A missing file is not an error.
func Uninstall(root *cobra.Command, shell string, out io.Writer) error {
	targetPath, err := Path(shell, root.Name())
	if err != nil {
		return err
	}

	info, err := os.Stat(targetPath)
	if err != nil || info.IsDir() {
		fmt.Fprintf(out, "No %s completions found at: %s\n", shell, targetPath)
		return nil
	}
	if err := os.Remove(targetPath); err != nil {
		return fmt.Errorf("could not remove %s: %w", targetPath, err)
	}
	fmt.Fprintf(out, "%s Removed %s completions from: %s\n", emoji.Success, shell, targetPath)
	return nil
}

// Path returns where the completion script for program is installed.
// Homebrew locations are preferred, then per-user directories.
func Path(shell, program string) (string, error) {
	var brewDir, userDir []string
	file := program

	switch shell {
	case constants.ShellBash:
		brewDir = []string{"etc", "bash_completion.d"}
		userDir = []string{".bash_completion.d"}
	case constants.ShellZsh:
		brewDir = []string{"share", "zsh", "site-functions"}
		userDir = []string{".zsh", "completions"}
		file = "_" + program
	case constants.ShellFish:
		brewDir = []string{"share", "fish", "vendor_completions.d"}
		userDir = []string{".config", "fish", "completions"}
		file = program + ".fish"
	default:
		return "", fmt.Errorf("install is not supported for shell: %s", shell)
	}

	if prefix := brewPrefix(); prefix != "" {
		return filepath.Join(append(append([]string{prefix}, brewDir...), file)...), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append(append([]string{home}, userDir...), file)...), nil
}

func brewPrefix() string {
	if prefix := os.Getenv("HOMEBREW_PREFIX"); prefix != "" {
		return prefix
	}
	for _, prefix := range []string{"/opt/homebrew", "/usr/local"} {
		if _, err := os.Stat(filepath.Join(prefix, "bin", "brew")); err == nil {
			return prefix
		}
	}
	return ""
}
