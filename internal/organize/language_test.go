// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package organize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/docmark/pkg/types"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name string
		text string
		want types.Language
	}{
		{"pure korean", "안녕하세요 반갑습니다", types.LangKorean},
		{"pure english", "hello world", types.LangEnglish},
		{"empty", "", types.LangEnglish},
		{"whitespace only", " \n\t ", types.LangEnglish},
		// 2 Hangul of 10 non-space runes = 20%.
		{"mixed", "가나 abcdefgh", types.LangMixed},
		// 1 of 10 = 10%, not above the mixed threshold.
		{"ten percent is english", "가 abcdefghi", types.LangEnglish},
		// 5 of 10 = 50%, not above the korean threshold.
		{"fifty percent is mixed", "가나다라마 abcde", types.LangMixed},
		{"compatibility jamo", "ㅋㅋㅋ", types.LangKorean},
		{"conjoining jamo", "가", types.LangKorean},
		{"markdown punctuation counts", "# 가\n\n**!!**", types.LangMixed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectLanguage(tt.text))
		})
	}
}

func TestKoreanPercentage(t *testing.T) {
	assert.InDelta(t, 100.0, KoreanPercentage("한글"), 0.001)
	assert.InDelta(t, 0.0, KoreanPercentage(""), 0.001)
	assert.InDelta(t, 50.0, KoreanPercentage("한 a"), 0.001)
}
