package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/five82/tailpane/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd(app.Run).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "tailpane: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd(runApp func(context.Context, app.Options) error) *cobra.Command {
	var opts app.Options

	cmd := &cobra.Command{
		Use:   "tailpane",
		Short: "Follow logs in a scrolling pane that keeps its memory bounded",
		Long: `tailpane shows a live stream of log lines in a terminal pane.

When the rendered text grows past height_limit rows it drops whole rows from
the top, keeping roughly new_height, without moving what you are looking at.
Auto-tail stays on while the scrollbar is at the bottom and turns off when you
scroll away.

Usage:
  tailpane [--follow /var/log/app.log] [--producers 2] [--interval 250ms]
  tailpane --headless --duration 10s

When stdout is not a terminal tailpane runs headless and prints pane
counters as log lines instead.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fd := os.Stdout.Fd()
			if !term.IsTerminal(fd) {
				opts.Headless = true
			} else if opts.Headless {
				if width, height, err := term.GetSize(fd); err == nil {
					opts.Width, opts.Rows = width, height
				}
			}
			return runApp(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/tailpane/config.toml)")
	flags.StringVar(&opts.PrefsPath, "prefs", "", "prefs file (default ~/.config/tailpane/prefs.toml)")
	flags.StringVar(&opts.FollowFile, "follow", "", "log file to follow")
	flags.IntVar(&opts.Producers, "producers", -1, "demo producers logging random paragraphs (default from config)")
	flags.DurationVar(&opts.Interval, "interval", 0, "pause between paragraphs per producer (default from config)")
	flags.BoolVar(&opts.Headless, "headless", false, "run without the UI and report pane counters")
	flags.DurationVar(&opts.Duration, "duration", 0, "stop a headless run after this long (0 runs until interrupted)")
	flags.DurationVar(&opts.ReportEvery, "report-every", 0, "headless report interval (default 1s)")
	return cmd
}
