// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package organize

import (
	"unicode"

	"github.com/pdiddy/docmark/pkg/types"
)

// isHangul reports whether r is a Hangul syllable, jamo, or compatibility jamo.
func isHangul(r rune) bool {
	return (r >= 0xAC00 && r <= 0xD7AF) ||
		(r >= 0x1100 && r <= 0x11FF) ||
		(r >= 0x3130 && r <= 0x318F)
}

// KoreanPercentage returns the share of non-whitespace runes in text that are
// Hangul, as a percentage in [0, 100].
func KoreanPercentage(text string) float64 {
	var korean, total int
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if isHangul(r) {
			korean++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(korean) / float64(total) * 100
}

// DetectLanguage classifies text as Korean (>50% Hangul), mixed (>10%), or
// English.
func DetectLanguage(text string) types.Language {
	p := KoreanPercentage(text)
	switch {
	case p > 50:
		return types.LangKorean
	case p > 10:
		return types.LangMixed
	default:
		return types.LangEnglish
	}
}
