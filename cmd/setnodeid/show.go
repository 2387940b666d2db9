package main

import (
	"fmt"
	"strconv"

	"setnodeid"
	"setnodeid/cmd/setnodeid/cmdutil"
	"setnodeid/cmd/setnodeid/ui"
	"setnodeid/internal/support/buildinfo"

	"github.com/spf13/cobra"
)

func showCmd(flags *cmdutil.TargetFlags) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Read the stored node ID without writing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			target, err := flags.Resolve(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store := cmdutil.NewStore(target)
			defer store.Close()

			if err := store.Begin(ctx, setnodeid.IdentitySize); err != nil {
				return fmt.Errorf("read node id: %w", err)
			}
			size := store.Length()
			v, err := store.Read(setnodeid.IdentityOffset)
			if err != nil {
				return fmt.Errorf("read node id: %w", err)
			}
			// Nothing was written, so End only releases the cache.
			if err := store.End(ctx); err != nil {
				return fmt.Errorf("read node id: %w", err)
			}

			out := cmd.OutOrStdout()
			if raw {
				_, err := fmt.Fprintln(out, v)
				return err
			}

			match := ui.ErrorMsg("differs from build")
			if built, err := setnodeid.ParseNodeID(buildinfo.NodeID); err == nil && built.Byte() == v {
				match = ui.SuccessMsg("matches build")
			}

			fmt.Fprint(out, ui.KeyValues("",
				ui.KV("stored node id", strconv.Itoa(int(v))),
				ui.KV("build node id", buildinfo.NodeID),
				ui.KV("status", match),
				ui.KV("store", target.Store),
				ui.KV("path", cmdutil.StorePath(target)),
				ui.KV("size", fmt.Sprintf("%d bytes", size)),
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print only the stored value")
	return cmd
}
