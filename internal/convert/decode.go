// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DecodeText converts a text payload to UTF-8. A byte-order mark wins, then a
// charset in contentType, then an HTML meta declaration; valid UTF-8 without
// any of those is returned unchanged. Undeclared bytes that are not UTF-8 are
// tried as EUC-KR (CP949) before the windows-1252 default. It also reports
// the encoding name used.
func DecodeText(data []byte, contentType string) (string, string, error) {
	if bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) {
		return string(data[3:]), "utf-8", nil
	}
	if bytes.HasPrefix(data, []byte{0xFF, 0xFE}) || bytes.HasPrefix(data, []byte{0xFE, 0xFF}) {
		dec := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
		out, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), dec))
		if err != nil {
			return "", "utf-16", fmt.Errorf("decoding utf-16: %w", err)
		}
		return string(out), "utf-16", nil
	}

	enc, name, certain := charset.DetermineEncoding(data, contentType)
	if !certain && utf8.Valid(data) {
		return string(data), "utf-8", nil
	}
	if enc == nil || name == "utf-8" {
		return string(data), "utf-8", nil
	}
	if !certain && name == "windows-1252" {
		if out, err := decodeWith(korean.EUCKR, data); err == nil && !strings.ContainsRune(out, utf8.RuneError) {
			return out, "euc-kr", nil
		}
	}

	out, err := decodeWith(enc, data)
	if err != nil {
		return "", name, fmt.Errorf("decoding %s: %w", name, err)
	}
	return out, name, nil
}

func decodeWith(enc encoding.Encoding, data []byte) (string, error) {
	out, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), enc.NewDecoder()))
	if err != nil {
		return "", err
	}
	return string(out), nil
}
