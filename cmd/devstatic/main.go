package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/wtnb75/devstatic"
)

func newCommand(cfg devstatic.Config) *cobra.Command {
	return &cobra.Command{
		Use: "devstatic",
		Short: fmt.Sprintf("Serve the %s directory at %s for local development.",
			cfg.RootDir, cfg.URL(cfg.Port)),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return devstatic.Run(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}
}

// exitCode reports err and maps it to the process exit status: 1 for a
// missing root directory or index, 2 for anything else.
func exitCode(err error, stdout, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	var cerr *devstatic.CheckError
	if errors.As(err, &cerr) {
		red := color.New(color.FgRed)
		for _, line := range cerr.Lines {
			red.Fprintln(stdout, line)
		}
		return 1
	}
	fmt.Fprintf(stderr, "%+v\n", err)
	return 2
}

func realMain(ctx context.Context, cfg devstatic.Config, args []string, stdout, stderr io.Writer) int {
	cmd := newCommand(cfg)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return exitCode(cmd.ExecuteContext(ctx), stdout, stderr)
}

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := realMain(ctx, devstatic.DefaultConfig(), os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
