package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/picowire/picowire"
)

var (
	// Global flags
	cfgFile     string
	schemaPaths []string
	bufferSize  int
	verbose     bool

	// Shared state set during PersistentPreRun
	cfg *Config
	pw  *picowire.Picowire

	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.InfoLevel).
		With().Timestamp().Logger()
)

// rootCmd is the base command for picowire.
var rootCmd = &cobra.Command{
	Use:   "picowire",
	Short: "Encode, decode, and inspect bounded protobuf messages",
	Long: `Picowire encodes and decodes protobuf messages against runtime-loaded
.proto schemas using fixed-capacity buffers, the same bounded codec the
library exposes to embedded-style targets.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			logger = logger.Level(zerolog.DebugLevel)
		}

		var err error
		cfg, err = loadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Override config with flags
		if len(schemaPaths) > 0 {
			cfg.SchemaPaths = schemaPaths
		}
		if bufferSize > 0 {
			cfg.BufferSize = bufferSize
		}

		pw = picowire.New()
		for _, path := range cfg.SchemaPaths {
			logger.Debug().Str("path", path).Msg("loading schema")
			if err := pw.LoadSchema(path); err != nil {
				return fmt.Errorf("failed to load schema %s: %w", path, err)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default picowire.toml)")
	rootCmd.PersistentFlags().StringSliceVarP(&schemaPaths, "schema", "s", nil, ".proto file or directory (repeatable)")
	rootCmd.PersistentFlags().IntVar(&bufferSize, "buffer-size", 0, "encode buffer capacity in bytes")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
