// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docmark/internal/container"
	"github.com/pdiddy/docmark/internal/convert"
	"github.com/pdiddy/docmark/internal/history"
	"github.com/pdiddy/docmark/internal/mdstat"
	"github.com/pdiddy/docmark/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [sources...]",
	Short: "Convert files or web pages to Markdown",
	Long: `Convert turns each source into Markdown. A source is an http(s) URL or a
file path; the format is detected from the file extension unless --kind is
given.

With a single source and no --out-dir the Markdown is written to stdout.
With --out-dir every source is written to <out-dir>/<name>.md; existing
files are skipped unless --force is set.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	kindFlag, _ := cmd.Flags().GetString("kind")
	kind, err := parseKindFlag(kindFlag)
	if err != nil {
		return err
	}
	showStats, _ := cmd.Flags().GetBool("stats")

	c, err := newConverter(ctx, cfg.Convert, cfg.Fetch, logger)
	if err != nil {
		return err
	}

	var rec convert.Recorder
	if cfg.History.Enabled {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return err
		}
		defer store.Close()
		rec = store
	}
	if showStats {
		rec = &statsPrinter{w: cmd.ErrOrStderr(), next: rec}
	}

	if cfg.Convert.OutputDir != "" {
		opts := convert.BatchOptions{
			OutputDir:   cfg.Convert.OutputDir,
			Kind:        kind,
			Frontmatter: cfg.Convert.Frontmatter,
			Force:       viper.GetBool("convert.force"),
			Recorder:    rec,
		}
		result := convert.ConvertBatch(ctx, c, args, opts, cmd.OutOrStdout())
		if result.HasFailures() {
			return fmt.Errorf("%d source(s) failed conversion", result.Failed)
		}
		return nil
	}

	if len(args) > 1 {
		return fmt.Errorf("%d sources given: use --out-dir to convert more than one", len(args))
	}
	return convertToStdout(ctx, c, args[0], kind, rec, cmd.OutOrStdout())
}

// convertToStdout converts one source and writes the Markdown to w.
func convertToStdout(ctx context.Context, c *convert.Converter, source string, kind types.SourceKind, rec convert.Recorder, w io.Writer) error {
	in, err := convert.LoadSource(source)
	if err != nil {
		return err
	}
	result, err := c.ConvertResult(ctx, in, kind)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, result.Markdown); err != nil {
		return err
	}
	if rec != nil {
		if _, err := rec.Record(ctx, source, result); err != nil {
			logger.Warn().Err(err).Str("source", source).Msg("history not recorded")
		}
	}
	return nil
}

// parseKindFlag maps the --kind flag to a source kind; empty means detect.
func parseKindFlag(s string) (types.SourceKind, error) {
	if s == "" {
		return "", nil
	}
	kind, err := types.ParseSourceKind(s)
	if err != nil {
		return "", fmt.Errorf("--kind: %w", err)
	}
	return kind, nil
}

// newConverter builds a Converter from config. The markitdown delegate is
// attached only when enabled and a container runtime with the image exists.
func newConverter(ctx context.Context, cc types.ConvertConfig, fc types.FetchConfig, log zerolog.Logger) (*convert.Converter, error) {
	opts := []convert.Option{
		convert.WithLogger(log),
		convert.WithFetcher(convert.NewHTTPFetcher(fc, log)),
	}
	if d := []rune(cc.Delimiter); len(d) == 1 {
		opts = append(opts, convert.WithDelimiter(d[0]))
	}

	if cc.EnableDelegate {
		rt, err := container.DetectRuntime(ctx)
		if err != nil {
			return nil, fmt.Errorf("markitdown delegate: %w", err)
		}
		d, err := convert.NewMarkitdownDelegate(ctx, rt, cc.MarkitdownImage)
		if err != nil {
			return nil, fmt.Errorf("markitdown delegate: %w", err)
		}
		log.Debug().Str("runtime", rt.Name()).Str("image", cc.MarkitdownImage).Msg("markitdown delegate enabled")
		opts = append(opts, convert.WithDelegate(d))
	}
	return convert.New(opts...), nil
}

// statsPrinter prints a structural summary of every converted document
// before passing it on to the next recorder, if any.
type statsPrinter struct {
	w    io.Writer
	next convert.Recorder
}

func (p *statsPrinter) Record(ctx context.Context, source string, result types.ConversionResult) (string, error) {
	s := mdstat.Analyze(result.Markdown)
	fmt.Fprintf(p.w, "%s: %s\n", source, s.Summary())
	if outline := s.Outline(); outline != "" {
		fmt.Fprint(p.w, outline)
	}
	if p.next == nil {
		return "", nil
	}
	return p.next.Record(ctx, source, result)
}

func init() {
	convertCmd.Flags().String("kind", "", "source kind override (url, html, pdf, xlsx, csv, tsv, json, xml, docx, pptx)")
	convertCmd.Flags().StringP("out-dir", "o", "", "write <name>.md files into this directory instead of stdout")
	convertCmd.Flags().Bool("frontmatter", false, "prepend a YAML header to written files")
	convertCmd.Flags().Bool("force", false, "overwrite existing output files")
	convertCmd.Flags().Bool("stats", false, "print a structural summary of each result to stderr")
	convertCmd.Flags().String("delimiter", "", "CSV field separator override")
	convertCmd.Flags().Bool("delegate", false, "convert docx/pptx through the markitdown container")
	convertCmd.Flags().Bool("history", false, "record conversions in the history database")

	_ = viper.BindPFlag("convert.output_dir", convertCmd.Flags().Lookup("out-dir"))
	_ = viper.BindPFlag("convert.frontmatter", convertCmd.Flags().Lookup("frontmatter"))
	_ = viper.BindPFlag("convert.force", convertCmd.Flags().Lookup("force"))
	_ = viper.BindPFlag("convert.delimiter", convertCmd.Flags().Lookup("delimiter"))
	_ = viper.BindPFlag("convert.enable_delegate", convertCmd.Flags().Lookup("delegate"))
	_ = viper.BindPFlag("history.enabled", convertCmd.Flags().Lookup("history"))

	rootCmd.AddCommand(convertCmd)
}

var _ convert.Recorder = (*history.Store)(nil)

