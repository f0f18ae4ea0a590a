package pdftext

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Extract pulls line-oriented text out of a PDF document. Line breaks
// follow the text-positioning operators of the content stream, which for
// the portal's generated reports puts each table cell on its own line.
func Extract(data []byte) (string, error) {
	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	var sb strings.Builder
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
		if err != nil {
			continue
		}
		raw, err := io.ReadAll(r)
		if err != nil || len(raw) == 0 {
			continue
		}
		sb.WriteString(parseContentStream(raw))
		sb.WriteByte('\n')
	}

	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return "", errors.New("no text content found in pdf")
	}
	return text, nil
}

// pdfStringRe matches PDF string literals: (text here)
var pdfStringRe = regexp.MustCompile(`\(((?:\\.|[^)\\])*)\)`)

// parseContentStream walks the content stream operators, emitting shown
// text (Tj, TJ, ') and starting a new output line on text positioning
// (Td, TD, T*, ').
func parseContentStream(data []byte) string {
	var sb strings.Builder
	lineOpen := false

	newline := func() {
		if lineOpen {
			sb.WriteByte('\n')
			lineOpen = false
		}
	}
	show := func(line []byte) {
		for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
			text := decodeString(m[1])
			if text != "" {
				sb.WriteString(text)
				lineOpen = true
			}
		}
	}

	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		switch {
		case bytes.HasSuffix(line, []byte("Tj")), bytes.HasSuffix(line, []byte("TJ")):
			show(line)
		case bytes.HasSuffix(line, []byte("'")) && bytes.Contains(line, []byte("(")):
			newline()
			show(line)
		case bytes.HasSuffix(line, []byte("Td")), bytes.HasSuffix(line, []byte("TD")),
			bytes.Equal(line, []byte("T*")):
			newline()
		}
	}
	newline()

	return sb.String()
}

// decodeString handles the PDF string escapes, including octal ones,
// which is how the portal encodes accented characters. Code points at
// 0x80 and above are Latin-1 in the portal's font encoding and must
// become UTF-8 runes, not raw bytes.
func decodeString(raw []byte) string {
	var sb strings.Builder
	writeCode := func(val int) {
		if val < 0x80 {
			sb.WriteByte(byte(val))
			return
		}
		sb.WriteRune(rune(val))
	}

	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			writeCode(int(raw[i]))
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\', '(', ')':
			sb.WriteByte(raw[i])
		default:
			if raw[i] >= '0' && raw[i] <= '7' {
				val := int(raw[i] - '0')
				for n := 0; n < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; n++ {
					i++
					val = val*8 + int(raw[i]-'0')
				}
				writeCode(val)
			} else {
				writeCode(int(raw[i]))
			}
		}
	}
	return sb.String()
}
