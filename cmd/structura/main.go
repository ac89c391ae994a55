// Package main is the entry point for the structura CLI.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tsawler/structura"
)

// version is set at build time via ldflags.
var version = "dev"

// exitError carries a process exit code through cobra's error return.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

// exitf builds an exitError with a formatted message.
func exitf(code int, format string, args ...any) error {
	return &exitError{code: code, err: fmt.Errorf(format, args...)}
}

// rootCmd is the base command for the structura CLI.
var rootCmd = &cobra.Command{
	Use:   "structura",
	Short: "Infer document structure from PDFs and render Markdown",
	Long: `structura converts PDF documents into structured Markdown. It extracts
positioned text, classifies the document type, and detects paragraphs,
lists, code blocks, and headings before rendering.

Conversion runs as a subcommand: convert for files, serve for the HTTP
service.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./structura.yaml or ~/.config/structura/config.yaml)")
}

// initConfig wires viper to the config file and STRUCTURA_* environment
// variables. A missing config file on the default search path is not an
// error; an explicitly named one must load.
func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("structura")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "structura"))
		}
	}

	viper.SetEnvPrefix("STRUCTURA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil && cfgFile != "" {
		fmt.Fprintf(os.Stderr, "structura: cannot read config %s: %v\n", cfgFile, err)
		os.Exit(exitConfig)
	}
}

// resolveConfig overlays viper-provided settings onto the default stage
// tuning. Only keys present in the config file or environment override
// defaults.
func resolveConfig() structura.Config {
	cfg := structura.DefaultConfig()

	if viper.IsSet("dialect") {
		cfg.Markdown.Dialect = viper.GetString("dialect")
	}
	if viper.IsSet("frontmatter") {
		cfg.Markdown.IncludeFrontmatter = viper.GetBool("frontmatter")
	}
	if viper.IsSet("auto_tune") {
		cfg.AutoTune = viper.GetBool("auto_tune")
	}
	if viper.IsSet("exclude_headers_footers") {
		cfg.ExcludeHeadersFooters = viper.GetBool("exclude_headers_footers")
	}
	if viper.IsSet("confidence_threshold") {
		cfg.ConfidenceThreshold = viper.GetFloat64("confidence_threshold")
	}
	if viper.IsSet("max_file_size") {
		cfg.Extract.MaxFileSize = viper.GetInt64("max_file_size")
	}
	if viper.IsSet("paragraph.spacing_threshold") {
		cfg.Paragraph.SpacingThreshold = viper.GetFloat64("paragraph.spacing_threshold")
	}
	if viper.IsSet("heading.min_size_difference") {
		cfg.Heading.MinSizeDifference = viper.GetFloat64("heading.min_size_difference")
	}

	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "structura:", err)

		var exit *exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		os.Exit(exitInput)
	}
}
