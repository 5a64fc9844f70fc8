// Package cli implements the freqdetect command line tool.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	freqdetector "github.com/mherrerarendon/freq-detector"
	"github.com/mherrerarendon/freq-detector/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Execute runs the root command and exits with code 1 on error.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCommand builds the freqdetect command tree. Flags override the config file and FREQDETECT_* variables.
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "freqdetect",
		Short: "Detect the fundamental frequency of recorded audio",
		Long: `freqdetect splits a mono WAV file into fixed-size frames and estimates the fundamental frequency of each
frame with either the autocorrelation or the power cepstrum detector.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.Init(configPath)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default ./config.yaml or ~/.config/freqdetect/config.yaml)")
	flags.StringP("algorithm", "a", freqdetector.AutocorrelationAlgorithm, "detection algorithm")
	flags.IntP("frame-size", "n", 8192, "samples per detection frame")
	flags.Float64("min-frequency", freqdetector.MinFrequency, "lowest detectable frequency in Hz")
	flags.Float64("max-frequency", freqdetector.MaxFrequency, "highest detectable frequency in Hz")
	flags.BoolP("debug", "D", false, "enable debug output")

	viper.BindPFlag("algorithm", flags.Lookup("algorithm"))
	viper.BindPFlag("frame_size", flags.Lookup("frame-size"))
	viper.BindPFlag("min_frequency", flags.Lookup("min-frequency"))
	viper.BindPFlag("max_frequency", flags.Lookup("max-frequency"))
	viper.BindPFlag("debug", flags.Lookup("debug"))

	rootCmd.AddCommand(newDetectCommand(), newSpectrumCommand(), newAlgorithmsCommand())
	return rootCmd
}

func newAlgorithmsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "algorithms",
		Short: "List the available detection algorithms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range freqdetector.Algorithms() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// setup loads the settings and builds the logger and detector they describe.
func setup(cmd *cobra.Command) (*config.Settings, *slog.Logger, freqdetector.Detector, error) {
	settings, err := config.Get()
	if err != nil {
		return nil, nil, nil, err
	}

	logger := newLogger(cmd.ErrOrStderr(), settings.Debug)
	params := settings.Params()
	if settings.Debug {
		params.Logger = logger
	}

	detector, err := freqdetector.New(settings.Algorithm, params)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("create detector: %w", err)
	}
	return settings, logger, detector, nil
}
