package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/structura"
	"github.com/tsawler/structura/extract"
	"github.com/tsawler/structura/model"
)

// Exit codes, stable for scripting.
const (
	exitInput      = 2
	exitOutput     = 3
	exitInvalidPDF = 4
	exitProcessing = 5
	exitFilesystem = 6
	exitConfig     = 7
	exitUnexpected = 99
)

var convertCmd = &cobra.Command{
	Use:   "convert INPUT",
	Short: "Convert a PDF file to structured Markdown",
	Long: `Convert reads a PDF, infers its structure (headings, paragraphs, lists,
and code blocks), and writes Markdown. The output path defaults to the
input path with a .md extension.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringP("output", "o", "", "output Markdown file (default: input with .md extension)")
	convertCmd.Flags().BoolP("force", "f", false, "overwrite an existing output file")
	convertCmd.Flags().Bool("frontmatter", false, "prepend YAML frontmatter to the output")
	convertCmd.Flags().String("title", "", "document title, rendered as a leading heading")
	convertCmd.Flags().String("strategy", "auto", "processing strategy: auto, resume, academic, business, manual, or report")
	convertCmd.Flags().BoolP("verbose", "v", false, "log progress and status information")
	convertCmd.Flags().Bool("debug", false, "log stage-by-stage detail")
	convertCmd.Flags().BoolP("quiet", "q", false, "suppress all output except errors")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = exitf(exitUnexpected, "unexpected failure: %v", r)
		}
	}()

	flags := cmd.Flags()
	quiet, _ := flags.GetBool("quiet")
	verbose, _ := flags.GetBool("verbose")
	debug, _ := flags.GetBool("debug")
	if quiet && (verbose || debug) {
		return exitf(exitInput, "cannot combine --quiet with --verbose or --debug")
	}

	input := args[0]
	if err := checkInput(input); err != nil {
		return err
	}

	output, _ := flags.GetString("output")
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".md"
	}
	force, _ := flags.GetBool("force")
	if err := checkOutput(output, force); err != nil {
		return err
	}

	strategy, _ := flags.GetString("strategy")
	docType, ok := model.ParseDocumentType(strategy)
	if !ok {
		return exitf(exitInput, "unknown strategy %q", strategy)
	}

	conv := structura.Open(input).
		WithConfig(resolveConfig()).
		WithLogger(newLogger(quiet, verbose, debug))
	if title, _ := flags.GetString("title"); title != "" {
		conv = conv.Title(title)
	}
	if frontmatter, _ := flags.GetBool("frontmatter"); frontmatter {
		conv = conv.Frontmatter()
	}
	if docType != model.DocumentTypeUnknown {
		conv = conv.DocumentType(docType)
	}

	warnings, err := conv.WriteFile(output)
	if err != nil {
		return convertError(err)
	}

	if !quiet {
		if len(warnings) > 0 {
			fmt.Fprintln(os.Stderr, structura.FormatWarnings(warnings))
		}
		fmt.Fprintf(os.Stderr, "Converted %s to %s\n", input, output)
	}
	return nil
}

// newLogger builds the CLI logger. The default level shows warnings only;
// --verbose raises it to info, --debug to debug, --quiet to error.
func newLogger(quiet, verbose, debug bool) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case quiet:
		level = slog.LevelError
	case debug:
		level = slog.LevelDebug
	case verbose:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// checkInput validates the input argument before the pipeline runs: the
// file must exist, be a regular file, and carry a .pdf extension. Deeper
// validation (header, structure) happens during extraction.
func checkInput(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return exitf(exitInput, "input file not found: %s", path)
		}
		return exitf(exitInput, "cannot access input file %s: %v", path, err)
	}
	if info.IsDir() {
		return exitf(exitInput, "input path is a directory: %s", path)
	}
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return exitf(exitInput, "input file must have a .pdf extension: %s", path)
	}
	return nil
}

// checkOutput validates the output path: the parent directory must exist
// and an existing file is only replaced with --force.
func checkOutput(path string, force bool) error {
	dir := filepath.Dir(path)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return exitf(exitOutput, "output directory does not exist: %s", dir)
	}
	if _, err := os.Stat(path); err == nil && !force {
		return exitf(exitOutput, "output file already exists: %s (use --force to overwrite)", path)
	}
	return nil
}

// convertError maps a pipeline failure to its exit code: rejected input to
// 4, a failed write to 3 or 6, anything else to 5.
func convertError(err error) error {
	var fileErr *extract.InvalidFileError
	if errors.As(err, &fileErr) {
		return &exitError{code: exitInvalidPDF, err: err}
	}

	var procErr *structura.ProcessingError
	if errors.As(err, &procErr) && procErr.Stage == "write" {
		if errors.Is(err, os.ErrPermission) {
			return &exitError{code: exitOutput, err: err}
		}
		return &exitError{code: exitFilesystem, err: err}
	}

	return &exitError{code: exitProcessing, err: err}
}
