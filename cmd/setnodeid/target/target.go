package targetcmd

import "github.com/spf13/cobra"

// Cmd returns the parent "setnodeid target" command.
func Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "target",
		Short: "Manage named storage and console targets",
	}

	cmd.AddCommand(listCmd())
	cmd.AddCommand(useCmd())
	cmd.AddCommand(addCmd())
	cmd.AddCommand(removeCmd())
	return cmd
}
