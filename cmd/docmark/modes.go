package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docmark/internal/organize"
	"github.com/pdiddy/docmark/pkg/types"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List the organization modes",
	RunE: func(cmd *cobra.Command, args []string) error {
		lang, _ := cmd.Flags().GetString("lang")
		writeModes(cmd.OutOrStdout(), types.Language(lang))
		return nil
	},
}

// writeModes prints one line per mode: id, display name, and description.
// Korean-only modes are marked with an asterisk.
func writeModes(w io.Writer, lang types.Language) {
	for _, m := range organize.Modes() {
		marker := " "
		if organize.KoreanOnly(m) {
			marker = "*"
		}
		fmt.Fprintf(w, "%-20s %s %-22s %s\n", m, marker, organize.ModeName(m, lang), organize.ModeDescription(m, lang))
	}
}

func init() {
	modesCmd.Flags().String("lang", string(types.LangEnglish), "label language: ko or en")
	rootCmd.AddCommand(modesCmd)
}
