package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Nomadcxx/torrentsink/internal/batch"
	"github.com/Nomadcxx/torrentsink/internal/config"
	"github.com/Nomadcxx/torrentsink/internal/logging"
	"github.com/Nomadcxx/torrentsink/internal/normalizer"
	"github.com/Nomadcxx/torrentsink/internal/ui"
)

var (
	cfgFile  string
	workers  int
	logLevel string
	plain    bool
	initCfg  bool

	// Version information (set via -ldflags during build)
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "torrentsink",
	Short: "Rename torrent files after the media they carry",
	Long: "torrentsink copies every .torrent under the source folder into the destination folder,\n" +
		"renamed after the single video file it lists, and writes the name manifests.",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runBatch,
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the planned renames without touching the destination",
	Args:  cobra.NoArgs,
	RunE:  runPreview,
}

var normalizeCmd = &cobra.Command{
	Use:   "normalize <name>...",
	Short: "Print the normalized form of each media file name",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range args {
			fmt.Fprintln(cmd.OutOrStdout(), normalizer.Normalize(normalizer.StripExt(name)))
		}
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show configuration file location and contents",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "torrentsink %s\n", version)
		fmt.Fprintf(out, "  Commit:     %s\n", commit)
		fmt.Fprintf(out, "  Built:      %s\n", buildTime)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.toml, then $HOME/.config/torrentsink/config.toml)")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0, "torrents read in parallel (overrides the config file)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "trace, debug, info, warn or error (overrides the config file)")
	previewCmd.Flags().BoolVar(&plain, "plain", false, "print the plan instead of opening the table view")
	configCmd.Flags().BoolVar(&initCfg, "init", false, "write an example config file")

	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(normalizeCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.FormatStatusFail(err.Error()))
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Exit code 130 for SIGINT
		}
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies flag overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if workers > 0 {
		cfg.Workers = workers
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

// signalContext is cancelled on Ctrl+C or SIGTERM
func signalContext(stderr io.Writer) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(stderr, "\nCancelling run...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}

// execute runs the batch with the loaded config
func execute(ctx context.Context, stderr io.Writer, dryRun bool) (*batch.Result, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	runner := batch.New(batch.Options{
		Logger:  logging.New(stderr, cfg.LogLevel),
		Workers: cfg.Workers,
		DryRun:  dryRun,
	})

	return runner.Run(ctx, cfg)
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext(cmd.ErrOrStderr())
	defer cancel()

	result, err := execute(ctx, cmd.ErrOrStderr(), false)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), ui.FormatSummary(result))
	return nil
}

func runPreview(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext(cmd.ErrOrStderr())
	defer cancel()

	result, err := execute(ctx, cmd.ErrOrStderr(), true)
	if err != nil {
		return err
	}

	if plain {
		fmt.Fprint(cmd.OutOrStdout(), ui.FormatPlan(result))
		return nil
	}

	if err := ui.RunPreview(result); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

func runConfig(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	path := cfgFile
	if path == "" {
		p, err := config.ConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	_, statErr := os.Stat(path)

	if initCfg {
		if statErr == nil {
			return fmt.Errorf("config file %s already exists", path)
		}
		if err := config.Save(config.DefaultConfig(), path); err != nil {
			return err
		}
		fmt.Fprintln(out, ui.FormatStatusOK("Example config written to "+path))
		return nil
	}

	fmt.Fprintf(out, "Configuration file: %s\n\n", path)

	if os.IsNotExist(statErr) {
		fmt.Fprintln(out, "Config file does not exist. Create it with:")
		fmt.Fprintln(out, "\n  torrentsink config --init")
		return nil
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Source folder:     %s\n", cfg.SourceFolder)
	fmt.Fprintf(out, "  Dest folder:       %s\n", cfg.DestFolder)
	fmt.Fprintf(out, "  Torrents manifest: %s\n", cfg.TorrentsManifestPath())
	fmt.Fprintf(out, "  Media manifest:    %s\n", cfg.MediaManifestPath())
	fmt.Fprintf(out, "  Workers:           %d\n", cfg.Workers)
	if cfg.LogLevel != "" {
		fmt.Fprintf(out, "  Log level:         %s\n", cfg.LogLevel)
	}
	return nil
}
