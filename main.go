package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"SignPad/internal/config"
	"SignPad/internal/logging"
	"SignPad/internal/loop"
	padnet "SignPad/internal/net"
	"SignPad/internal/pad"
	"SignPad/internal/ui"
)

const dialTimeout = 5 * time.Second

var (
	settings = config.Defaults()
	verbose  bool

	discoverTimeout time.Duration
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "signpad [signpad://host:port]",
		Short: "Hold-to-sign signature pad",
		Long: "Opens a signature pad window. Given a share link, opens a remote tablet\n" +
			"for the pad hosted there instead.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runHostCmd,
	}

	// rendering flags apply to remote windows too
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "log state transitions")
	pf.Float64Var(&settings.StrokeWidth, "stroke-width", settings.StrokeWidth, "stroke width in pixels")
	pf.StringVar(&settings.StrokeColor, "stroke-color", settings.StrokeColor, "stroke color (#rrggbb)")

	f := rootCmd.Flags()
	f.Float64Var(&settings.MsPerUnit, "ms-per-unit", settings.MsPerUnit, "milliseconds of animation per unit of ink")
	f.Float64Var(&settings.FillScale, "fill-scale", settings.FillScale, "hold fill duration multiplier")
	f.Float64Var(&settings.DrainScale, "drain-scale", settings.DrainScale, "spring-back duration multiplier")
	f.StringVar(&settings.Easing, "easing", settings.Easing, "bezier, ease-out, ease-in-out, ease-in or linear")
	f.IntVar(&settings.FrameRate, "frame-rate", settings.FrameRate, "animation frames per second")
	f.IntVar(&settings.Listen, "listen", settings.Listen, "port for remote tablets (0 disables)")
	f.BoolVar(&settings.Advertise, "advertise", settings.Advertise, "announce the pad over mDNS when listening")

	rootCmd.AddCommand(newRemoteCmd())
	rootCmd.AddCommand(newDiscoverCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// resolveSettings merges the config file into settings. Flags set on the
// command line win.
func resolveSettings(cmd *cobra.Command) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFloatConfig(cmd, "stroke-width", &settings.StrokeWidth, fileCfg.Pad.StrokeWidth)
	applyStringConfig(cmd, "stroke-color", &settings.StrokeColor, fileCfg.Pad.StrokeColor)
	applyFloatConfig(cmd, "ms-per-unit", &settings.MsPerUnit, fileCfg.Pad.MsPerUnit)
	applyFloatConfig(cmd, "fill-scale", &settings.FillScale, fileCfg.Pad.FillScale)
	applyFloatConfig(cmd, "drain-scale", &settings.DrainScale, fileCfg.Pad.DrainScale)
	applyStringConfig(cmd, "easing", &settings.Easing, fileCfg.Pad.Easing)
	applyIntConfig(cmd, "frame-rate", &settings.FrameRate, fileCfg.Pad.FrameRate)
	applyIntConfig(cmd, "listen", &settings.Listen, fileCfg.Remote.Listen)
	applyBoolConfig(cmd, "advertise", &settings.Advertise, fileCfg.Remote.Advertise)
	return settings.Validate()
}

func runHostCmd(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		if !strings.HasPrefix(args[0], padnet.LinkScheme) {
			return fmt.Errorf("unexpected argument %q", args[0])
		}
		return runRemote(cmd, args[0])
	}
	setupLogging()

	if err := resolveSettings(cmd); err != nil {
		return err
	}
	ink, _ := config.ParseColor(settings.StrokeColor)

	runner := loop.New(pad.NewController(settings.Timing()), loop.Options{FrameRate: settings.FrameRate})
	defer runner.Close()

	opts := ui.Options{
		Title:       "SignPad",
		StrokeColor: ink,
		StrokeWidth: float32(settings.StrokeWidth),
	}

	if settings.Listen > 0 {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		server := padnet.NewServer(runner)
		defer server.Close()

		port, err := startServer(ctx, server, settings.Listen)
		if err != nil {
			return err
		}
		opts.ShareLink = padnet.ShareLink(padnet.OutgoingIP(), port)
		logging.Logger().Info("share link", "link", opts.ShareLink)

		if settings.Advertise {
			mdnsServer, err := padnet.Advertise(port)
			if err != nil {
				logging.Logger().Warn("mDNS advertisement failed", "err", err)
			} else {
				defer mdnsServer.Shutdown()
			}
		}
	}

	ui.RunApp(runner, opts)
	return nil
}

// startServer runs the remote tablet server in the background and waits
// until it is listening.
func startServer(ctx context.Context, server *padnet.Server, port int) (int, error) {
	ready := make(chan int, 1)
	errc := make(chan error, 1)
	go func() {
		errc <- server.ListenAndServe(ctx, port, func(p int) { ready <- p })
	}()
	select {
	case p := <-ready:
		go func() {
			if err := <-errc; err != nil {
				logging.Logger().Error("remote tablet server stopped", "err", err)
			}
		}()
		return p, nil
	case err := <-errc:
		return 0, fmt.Errorf("failed to start remote tablet server: %w", err)
	}
}

func newRemoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remote <link>",
		Short: "Sign on a pad hosted elsewhere",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemote(cmd, args[0])
		},
	}
}

func runRemote(cmd *cobra.Command, link string) error {
	setupLogging()
	if err := resolveSettings(cmd); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()

	client, err := padnet.Dial(ctx, link)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer client.Close()

	status := make(chan string, 1)
	go func() {
		<-client.Done()
		if err := client.Err(); err != nil {
			status <- "Disconnected: " + err.Error()
		}
		close(status)
	}()

	ink, _ := config.ParseColor(settings.StrokeColor)
	ui.RunApp(client, ui.Options{
		Title:       "SignPad remote",
		StrokeColor: ink,
		StrokeWidth: float32(settings.StrokeWidth),
		Status:      status,
	})
	return nil
}

func newDiscoverCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "discover",
		Short: "List pads advertised on the local network",
		Args:  cobra.NoArgs,
		RunE:  runDiscoverCmd,
	}
	cmd.Flags().DurationVar(&discoverTimeout, "timeout", 3*time.Second, "how long to listen for announcements")
	return cmd
}

func runDiscoverCmd(cmd *cobra.Command, _ []string) error {
	setupLogging()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	seen := map[string]bool{}
	err := padnet.Browse(ctx, discoverTimeout, func(link string) {
		if seen[link] {
			return
		}
		seen[link] = true
		fmt.Fprintln(cmd.OutOrStdout(), link)
	})
	if err != nil && ctx.Err() == nil {
		return err
	}
	if len(seen) == 0 {
		logErrln("no pads found")
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the config path, creating a template if missing",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(cmd *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(config.DefaultTemplate), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func logErrln(args ...any) {
	_, _ = fmt.Fprintln(os.Stderr, args...)
}
