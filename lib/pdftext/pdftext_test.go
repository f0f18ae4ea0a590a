package pdftext

import "testing"

func TestParseContentStream(t *testing.T) {
	stream := []byte(`BT
/F1 9 Tf
1 0 0 1 50 700 Td
(1) Tj
1 0 0 1 50 690 Td
(GCC123T) Tj
1 0 0 1 50 680 Td
(CALCULO I) Tj
T*
[(ALGEBRA) -250 ( LINEAR)] TJ
ET`)

	got := parseContentStream(stream)
	expected := "1\nGCC123T\nCALCULO I\nALGEBRA LINEAR\n"
	if got != expected {
		t.Fatalf("parseContentStream = %q, expected %q", got, expected)
	}
}

func TestParseContentStreamQuote(t *testing.T) {
	stream := []byte(`(primeira) Tj
(segunda) '`)

	got := parseContentStream(stream)
	expected := "primeira\nsegunda\n"
	if got != expected {
		t.Fatalf("parseContentStream = %q, expected %q", got, expected)
	}
}

func TestParseContentStreamAccents(t *testing.T) {
	// the portal encodes accented characters as octal escapes; the
	// decoded text must come out as UTF-8 so the campus and discipline
	// matchers see the real city names
	stream := []byte(`1 0 0 1 50 700 Td
(Local:Pr\351dio B - Itagua\355 - RJ -) Tj`)

	got := parseContentStream(stream)
	expected := "Local:Prédio B - Itaguaí - RJ -\n"
	if got != expected {
		t.Fatalf("parseContentStream = %q, expected %q", got, expected)
	}
}

func TestDecodeString(t *testing.T) {
	testCases := []struct {
		in       string
		expected string
	}{
		{`plain`, "plain"},
		{`par\(entese\)`, "par(entese)"},
		{`barra\\dupla`, `barra\dupla`},
		{`Itagua\355`, "Itaguaí"},
		{`Maracan\343`, "Maracanã"},
		{`Valen\347a`, "Valença"},
		{`\101BC`, "ABC"},
	}
	for _, tc := range testCases {
		got := decodeString([]byte(tc.in))
		if got != tc.expected {
			t.Fatalf("decodeString(%q) = %q, expected %q", tc.in, got, tc.expected)
		}
	}
}
