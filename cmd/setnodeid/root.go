package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"setnodeid"
	"setnodeid/cmd/setnodeid/cmdutil"
	targetcmd "setnodeid/cmd/setnodeid/target"
	"setnodeid/cmd/setnodeid/ui"
	"setnodeid/internal/logging"
	"setnodeid/internal/support/buildinfo"
	"setnodeid/internal/telemetry"
	"setnodeid/provision"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
)

func rootCmd() *cobra.Command {
	var (
		flags  cmdutil.TargetFlags
		debug  bool
		noIdle bool
	)

	cmd := &cobra.Command{
		Use:   "setnodeid",
		Short: "Write this node's mesh identity to persistent storage and verify it",
		Long: "Writes the node ID compiled into this binary at offset 0 of the identity store,\n" +
			"commits it, reads it back and prints the verdict on the diagnostic console.\n" +
			"Afterwards the process idles until it is interrupted.",
		Version:       fmt.Sprintf("%s (node id %s)", buildinfo.Version, buildinfo.NodeID),
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := logging.LevelWarn
			if debug {
				level = logging.LevelDebug
			}
			if err := logging.Configure(level); err != nil {
				return err
			}
			ui.ConfigureColor()
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if debug {
				tp := telemetry.NewDebugProvider(slog.Default())
				otel.SetTracerProvider(tp)
				defer func() { _ = tp.Shutdown(context.Background()) }()
			}

			return runProvision(ctx, cmd, &flags, !noIdle)
		},
	}

	flags.Bind(cmd)
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	cmd.Flags().BoolVar(&noIdle, "no-idle", false, "Exit after the verdict instead of idling")

	cmd.AddCommand(showCmd(&flags))
	cmd.AddCommand(targetcmd.Cmd())
	return cmd
}

// runProvision performs the single write-verify run. A failed verification is
// reported on the console only; it does not make the command fail.
func runProvision(ctx context.Context, cmd *cobra.Command, flags *cmdutil.TargetFlags, idle bool) error {
	id, err := setnodeid.ParseNodeID(buildinfo.NodeID)
	if err != nil {
		return fmt.Errorf("build-time node id: %w", err)
	}

	target, err := flags.Resolve(cmd)
	if err != nil {
		return err
	}

	store := cmdutil.NewStore(target)
	defer func() {
		if err := store.Close(); err != nil {
			slog.Warn("Close identity store.", "err", err)
		}
	}()

	cons := cmdutil.NewConsole(target, cmd.OutOrStdout())
	defer func() { _ = cons.Close() }()

	slog.Debug("Provisioning node identity.",
		"node_id", id,
		"store", target.Store,
		"store_path", cmdutil.StorePath(target),
		"console", target.Console,
	)

	w := provision.New(store, provision.WithConsole(cons.Open))
	if _, err := w.Run(ctx, id); err != nil {
		return err
	}

	if !idle {
		return nil
	}
	slog.Debug("Idle until interrupted.", "phase", w.Phase())
	w.Idle(ctx)
	return nil
}
