// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docmark/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse previously converted documents",
	Long: `History manages the local SQLite log of conversions. Conversions are
recorded when history is enabled (--history on convert, or history.enabled in
the config file).`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent conversions, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withHistory(cmd, func(ctx context.Context, s *history.Store) error {
			limit, _ := cmd.Flags().GetInt("limit")
			entries, err := s.List(ctx, limit)
			if err != nil {
				return err
			}
			return writeEntries(cmd, entries)
		})
	},
}

// --- search subcommand ---

var historySearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search conversions by source, file name, or content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withHistory(cmd, func(ctx context.Context, s *history.Store) error {
			limit, _ := cmd.Flags().GetInt("limit")
			entries, err := s.Search(ctx, args[0], limit)
			if err != nil {
				return err
			}
			return writeEntries(cmd, entries)
		})
	},
}

// --- show subcommand ---

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print the Markdown of a recorded conversion",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withHistory(cmd, func(ctx context.Context, s *history.Store) error {
			e, err := s.Get(ctx, args[0])
			if err != nil {
				return err
			}
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return encodeJSON(cmd.OutOrStdout(), e)
			}
			fmt.Fprintln(cmd.OutOrStdout(), e.Markdown)
			return nil
		})
	},
}

// --- delete subcommand ---

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a recorded conversion",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withHistory(cmd, func(ctx context.Context, s *history.Store) error {
			if err := s.Delete(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted: %s\n", args[0])
			return nil
		})
	},
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every recorded conversion as YAML or JSON",
	Long: `Export writes all history entries, including their Markdown, oldest first.
Output goes to stdout unless --output names a file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withHistory(cmd, func(ctx context.Context, s *history.Store) error {
			format, _ := cmd.Flags().GetString("format")
			output, _ := cmd.Flags().GetString("output")
			if output == "" {
				return s.Export(ctx, cmd.OutOrStdout(), format)
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", output, err)
			}
			if err := s.Export(ctx, f, format); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported history to %s\n", output)
			return nil
		})
	},
}

// withHistory opens the configured history database for the duration of fn.
func withHistory(cmd *cobra.Command, fn func(context.Context, *history.Store) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(ctx, s)
}

func writeEntries(cmd *cobra.Command, entries []history.Entry) error {
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		if entries == nil {
			entries = []history.Entry{}
		}
		return encodeJSON(cmd.OutOrStdout(), entries)
	}
	writeEntryTable(cmd.OutOrStdout(), entries)
	return nil
}

// writeEntryTable prints entries as aligned columns.
func writeEntryTable(w io.Writer, entries []history.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No conversions recorded.")
		return
	}
	fmt.Fprintf(w, "%-36s  %-16s  %-6s  %8s  %s\n", "ID", "CONVERTED", "KIND", "BYTES", "SOURCE")
	for _, e := range entries {
		fmt.Fprintf(w, "%-36s  %-16s  %-6s  %8d  %s\n",
			e.ID, e.ConvertedAt.Local().Format("2006-01-02 15:04"), e.SourceKind, e.Bytes, truncate(e.Source, 60))
	}
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func init() {
	for _, c := range []*cobra.Command{historyListCmd, historySearchCmd} {
		c.Flags().IntP("limit", "n", 20, "maximum number of entries")
		c.Flags().Bool("json", false, "print entries as JSON")
	}
	historyShowCmd.Flags().Bool("json", false, "print the entry with metadata as JSON")
	historyExportCmd.Flags().String("format", history.FormatYAML, "export format: yaml or json")
	historyExportCmd.Flags().StringP("output", "o", "", "write the export to this file")

	historyCmd.AddCommand(historyListCmd, historySearchCmd, historyShowCmd, historyDeleteCmd, historyExportCmd)
	rootCmd.AddCommand(historyCmd)
}
