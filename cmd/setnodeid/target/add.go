package targetcmd

import (
	"fmt"
	"time"

	"setnodeid/cmd/setnodeid/ui"
	"setnodeid/config"

	"github.com/spf13/cobra"
)

func addCmd() *cobra.Command {
	var (
		t            config.Target
		readyTimeout time.Duration
		use          bool
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add or update a target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("ready-timeout") {
				t.ReadyTimeout = config.Duration(readyTimeout)
			}
			if err := cfg.Set(name, t); err != nil {
				return err
			}
			if use || len(cfg.Targets) == 1 {
				if err := cfg.Use(name); err != nil {
					return err
				}
			}
			if err := cfg.Save(); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.SuccessMsg("Target %s saved.", ui.Bold(name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&t.Store, "store", "", "Identity store: file, sqlite or memory")
	cmd.Flags().StringVar(&t.StorePath, "store-path", "", "Path of the identity image or database")
	cmd.Flags().StringVar(&t.Console, "console", "", "Serial device for diagnostics")
	cmd.Flags().IntVar(&t.Baud, "baud", 0, "Serial console baud rate")
	cmd.Flags().BoolVar(&t.WaitDSR, "wait-dsr", false, "Wait for the host to assert DSR")
	cmd.Flags().DurationVar(&readyTimeout, "ready-timeout", 0, "How long to wait for the console; 0 waits forever")
	cmd.Flags().BoolVar(&use, "use", false, "Make this the current target")
	return cmd
}
