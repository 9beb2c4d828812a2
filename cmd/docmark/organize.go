// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docmark/internal/organize"
	"github.com/pdiddy/docmark/pkg/types"
)

var organizeCmd = &cobra.Command{
	Use:   "organize <markdown-file>",
	Short: "Build the organization prompt pair for converted Markdown",
	Long: `Organize reads Markdown (a file, or "-" for stdin) and prints the system
and user prompts for the selected mode. The prompts are in Korean or English
depending on the document's language; school and office modes are always in
Korean. Run "docmark modes" to list the available modes.

The prompts are printed, not sent: pipe them into the generation client of
your choice, or use --json to get a machine-readable request body.`,
	Args: cobra.ExactArgs(1),
	RunE: runOrganize,
}

// organizeRequest is the --json output shape.
type organizeRequest struct {
	Mode        types.OrganizationMode `json:"mode"`
	Language    types.Language         `json:"language"`
	Temperature float64                `json:"temperature"`
	System      string                 `json:"system"`
	User        string                 `json:"user"`
}

func runOrganize(cmd *cobra.Command, args []string) error {
	modeFlag, _ := cmd.Flags().GetString("mode")
	mode, err := organize.ParseMode(modeFlag)
	if err != nil {
		return err
	}

	opts := types.OrganizeOptions{
		Mode:           mode,
		TargetLanguage: cfg.Organize.TargetLanguage,
		Temperature:    cfg.Organize.Temperature,
	}
	if cmd.Flags().Changed("target-language") {
		flag, _ := cmd.Flags().GetString("target-language")
		target, err := parseTargetLanguage(flag)
		if err != nil {
			return err
		}
		opts.TargetLanguage = target
	}
	if cmd.Flags().Changed("temperature") {
		opts.Temperature, _ = cmd.Flags().GetFloat64("temperature")
	}

	data, err := readInput(args[0], cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}
	markdown := string(data)

	pair, err := organize.BuildPrompt(markdown, opts)
	if err != nil {
		return err
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		return writeOrganizeJSON(cmd.OutOrStdout(), opts, organize.DetectLanguage(markdown), pair)
	}
	writePromptPair(cmd.OutOrStdout(), pair)
	return nil
}

func writeOrganizeJSON(w io.Writer, opts types.OrganizeOptions, lang types.Language, pair types.PromptPair) error {
	return encodeJSON(w, organizeRequest{
		Mode:        opts.Mode,
		Language:    lang,
		Temperature: opts.Temperature,
		System:      pair.System,
		User:        pair.User,
	})
}

func writePromptPair(w io.Writer, pair types.PromptPair) {
	fmt.Fprintln(w, "=== system ===")
	fmt.Fprintln(w, pair.System)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== user ===")
	fmt.Fprintln(w, pair.User)
}

// parseTargetLanguage accepts "ko" or "en" in any case.
func parseTargetLanguage(s string) (types.Language, error) {
	switch lang := types.Language(strings.ToLower(strings.TrimSpace(s))); lang {
	case types.LangKorean, types.LangEnglish:
		return lang, nil
	default:
		return "", fmt.Errorf("--target-language: %q is not ko or en", s)
	}
}

// readInput reads path, or stdin when path is "-".
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func init() {
	organizeCmd.Flags().StringP("mode", "m", string(types.ModeRestructure), "organization mode")
	organizeCmd.Flags().String("target-language", "", "translate-organize output language: ko or en (default from config)")
	organizeCmd.Flags().Float64("temperature", 0, "generation temperature (default from config)")
	organizeCmd.Flags().Bool("json", false, "print the prompt pair as JSON")

	rootCmd.AddCommand(organizeCmd)
}
