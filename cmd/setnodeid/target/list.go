package targetcmd

import (
	"fmt"
	"sort"
	"strconv"

	"setnodeid/cmd/setnodeid/ui"
	"setnodeid/config"

	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List configured targets",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(cfg.Targets) == 0 {
				fmt.Fprintln(out, ui.InfoMsg("No targets configured."))
				return nil
			}

			names := make([]string, 0, len(cfg.Targets))
			for name := range cfg.Targets {
				names = append(names, name)
			}
			sort.Strings(names)

			var rows [][]string
			for _, name := range names {
				t := cfg.Targets[name]

				current := ""
				if name == cfg.CurrentTarget {
					current = "*"
				}
				store := t.Store
				if store == "" {
					store = config.StoreFile
				}
				cons := t.Console
				if cons == "" {
					cons = "stdout"
				} else if t.Baud != 0 {
					cons += "@" + strconv.Itoa(t.Baud)
				}

				rows = append(rows, []string{current, name, store, t.StorePath, cons})
			}

			fmt.Fprintln(out, ui.Table([]string{"", "NAME", "STORE", "PATH", "CONSOLE"}, rows))
			return nil
		},
	}
}
