// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/korean"

	"github.com/pdiddy/docmark/pkg/types"
)

func eucKR(t *testing.T, s string) []byte {
	t.Helper()
	out, err := korean.EUCKR.NewEncoder().Bytes([]byte(s))
	require.NoError(t, err)
	return out
}

func TestDecodeText(t *testing.T) {
	tests := []struct {
		name        string
		data        []byte
		contentType string
		want        string
		wantEnc     string
	}{
		{
			name:    "plain utf-8",
			data:    []byte("안녕 hello"),
			want:    "안녕 hello",
			wantEnc: "utf-8",
		},
		{
			name:    "utf-8 bom stripped",
			data:    append([]byte{0xEF, 0xBB, 0xBF}, "a,b"...),
			want:    "a,b",
			wantEnc: "utf-8",
		},
		{
			name:    "utf-16 little endian",
			data:    []byte{0xFF, 0xFE, 'h', 0, 'i', 0},
			want:    "hi",
			wantEnc: "utf-16",
		},
		{
			name:        "charset from content type",
			data:        eucKR(t, "<p>한글</p>"),
			contentType: "text/html; charset=EUC-KR",
			want:        "<p>한글</p>",
			wantEnc:     "euc-kr",
		},
		{
			name:    "charset from meta declaration",
			data:    append([]byte(`<meta charset="euc-kr"><p>`), eucKR(t, "한글")...),
			want:    `<meta charset="euc-kr"><p>한글`,
			wantEnc: "euc-kr",
		},
		{
			name:    "undeclared euc-kr",
			data:    eucKR(t, "이름,점수\n김철수,90\n"),
			want:    "이름,점수\n김철수,90\n",
			wantEnc: "euc-kr",
		},
		{
			name:    "undeclared latin-1 falls back to windows-1252",
			data:    []byte("caf\xe9 au lait"),
			want:    "café au lait",
			wantEnc: "windows-1252",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, enc, err := DecodeText(tt.data, tt.contentType)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantEnc, enc)
		})
	}
}

func TestConvertUndeclaredEUCKRDelimited(t *testing.T) {
	md, err := New().Convert(t.Context(), types.FileInput("grades.csv", eucKR(t, "이름,점수\n김철수,90\n")), "")
	require.NoError(t, err)
	assert.Contains(t, md, "| 이름 | 점수 |")
	assert.Contains(t, md, "| 김철수 | 90 |")
}
