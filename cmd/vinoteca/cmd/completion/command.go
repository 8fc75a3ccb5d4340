// Package completion implements the completion command.
package completion

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/vinoteca/internal/cmd/completion"
	"github.com/agentstation/vinoteca/internal/cmd/constants"
)

// installable are the shells install and uninstall handle by default.
var installable = []string{constants.ShellBash, constants.ShellZsh, constants.ShellFish}

// NewCommand creates the completion command. It replaces cobra's generated
// completion command so install and uninstall are available.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate or install shell completions",
		Long: `Generate a completion script for the given shell on stdout, or install
it into the shell's completion directory.

To load completions in the current bash session:

  source <(vinoteca completion bash)`,
		Example: `  vinoteca completion zsh > _vinoteca
  vinoteca completion install          # bash, zsh and fish
  vinoteca completion install fish
  vinoteca completion uninstall`,
		ValidArgs:             constants.Shells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return completion.Generate(cmd.Root(), args[0], cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:       "install [shell]",
		Short:     "Install completion scripts",
		ValidArgs: installable,
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, shell := range shells(args) {
				if err := completion.Install(cmd.Root(), shell, cmd.OutOrStdout()); err != nil {
					return err
				}
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "uninstall [shell]",
		Short:     "Remove installed completion scripts",
		ValidArgs: installable,
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, shell := range shells(args) {
				if err := completion.Uninstall(cmd.Root(), shell, cmd.OutOrStdout()); err != nil {
					return err
				}
			}
			return nil
		},
	})

	return cmd
}

func shells(args []string) []string {
	if len(args) == 1 {
		return args
	}
	return installable
}
