// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape_test

import (
	"testing"

	"github.com/creachadair/spdxstream/internal/escape"
	"go4.org/mem"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", `""`},
		{" ", `" "`},
		{"a\t\nb", `"a\t\nb"`},
		{"\x00\x01\x02", `"\u0000\u0001\u0002"`},
		{`a "b c\" d"`, `"a \"b c\\\" d\""`},
		{"\u2028 \u2029", `"\u2028 \u2029"`},
		{"SPDXRef-Package-ü", `"SPDXRef-Package-ü"`},
		{"<\x1e>", `"<\u001e>"`},
	}
	for _, test := range tests {
		if got := escape.Quote(test.input); got != test.want {
			t.Errorf("Input: %#q\nGot:  %#q\nWant: %#q", test.input, got, test.want)
		}
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		input string
		want  string
		fail  bool
	}{
		{``, ``, false},
		{`ok go`, "ok go", false},
		{`abc\ndef`, "abc\ndef", false},
		{`\b\f\n\r\t`, "\b\f\n\r\t", false},
		{`a & b`, "a & b", false},
		{`a\"b`, `a"b`, false},
		{`a\\b\\cd`, `a\b\cd`, false},
		{`http:\/\/spdx.org`, "http://spdx.org", false},
		{`\ud83d\ude00!`, "\U0001F600!", false}, // surrogate pair
		{`\ud83d x`, "\ufffd x", false},         // unpaired leading surrogate
		{`\ude00`, "\ufffd", false},             // unpaired trailing surrogate
		{`\u`, ``, true},                        // incomplete Unicode escape
		{`\u00`, ``, true},                      // incomplete Unicode escape
		{`\u00x9`, ``, true},                    // invalid hex digit
		{`\q`, ``, true},                        // invalid escape
		{`abc\`, ``, true},                      // incomplete escape
	}
	for _, test := range tests {
		got, err := escape.Unquote(nil, mem.S(test.input))
		if err != nil {
			if !test.fail {
				t.Errorf("Unquote(%#q): got %v, want no error", test.input, err)
			} else {
				t.Logf("Unquote(%#q): got expected error: %v", test.input, err)
			}
			continue
		} else if test.fail {
			t.Errorf("Unquote(%#q): got %#q, want error", test.input, got)
			continue
		}
		if s := string(got); s != test.want {
			t.Errorf("Unquote(%#q): got %#q, want %#q", test.input, s, test.want)
		}
	}
}
