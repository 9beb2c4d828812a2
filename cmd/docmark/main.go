// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the docmark CLI. docmark converts web
// pages, HTML, PDF, spreadsheets, delimited text, JSON and XML into Markdown
// and builds organization prompts for the converted text.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docmark/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// cfg is the merged configuration, loaded before every subcommand runs.
	cfg types.Config

	// logger writes diagnostics to stderr.
	logger = zerolog.Nop()
)

// rootCmd is the base command for the docmark CLI.
var rootCmd = &cobra.Command{
	Use:   "docmark",
	Short: "Convert documents to Markdown and build organization prompts",
	Long: `docmark converts heterogeneous documents into Markdown: web pages, HTML,
PDF, XLSX, CSV/TSV, JSON and XML. DOCX and PPTX are converted through the
markitdown container when it is enabled.

The converted Markdown can be fed to "docmark organize", which builds the
system and user prompts for one of nine organization modes.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		logJSON, _ := cmd.Flags().GetBool("log-json")
		logger = newLogger(os.Stderr, verbose, logJSON)

		c, err := loadConfig()
		if err != nil {
			return err
		}
		cfg = c
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./docmark.yaml or ~/.config/docmark/docmark.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("log-json", false, "write logs as JSON lines")
}

func initConfig() {
	// A missing .env file is fine; variables may come from the environment.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("docmark")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "docmark"))
		}
	}

	setDefaults(types.DefaultConfig())
	viper.SetEnvPrefix("DOCMARK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults registers every config key so environment variables such as
// DOCMARK_FETCH_TIMEOUT are picked up by Unmarshal.
func setDefaults(d types.Config) {
	viper.SetDefault("fetch.timeout", d.Fetch.Timeout)
	viper.SetDefault("fetch.user_agent", d.Fetch.UserAgent)
	viper.SetDefault("fetch.accept_language", d.Fetch.AcceptLanguage)
	viper.SetDefault("fetch.max_retries", d.Fetch.MaxRetries)
	viper.SetDefault("convert.output_dir", d.Convert.OutputDir)
	viper.SetDefault("convert.frontmatter", d.Convert.Frontmatter)
	viper.SetDefault("convert.delimiter", d.Convert.Delimiter)
	viper.SetDefault("convert.enable_delegate", d.Convert.EnableDelegate)
	viper.SetDefault("convert.markitdown_image", d.Convert.MarkitdownImage)
	viper.SetDefault("history.enabled", d.History.Enabled)
	viper.SetDefault("history.path", d.History.Path)
	viper.SetDefault("organize.target_language", string(d.Organize.TargetLanguage))
	viper.SetDefault("organize.temperature", d.Organize.Temperature)
}

// loadConfig merges defaults, config file, environment, and bound flags,
// then validates the result.
func loadConfig() (types.Config, error) {
	c := types.DefaultConfig()
	if err := viper.Unmarshal(&c); err != nil {
		return types.Config{}, fmt.Errorf("reading config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return c, nil
}

// newLogger builds the CLI logger: human-readable console output by default,
// JSON lines with --log-json.
func newLogger(w io.Writer, verbose, jsonLines bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	if !jsonLines {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
