package processors

import "testing"

func TestTrimTrailingSpace(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"spaces", "a  \nb\t\n", "a\nb\n"},
		{"crlf kept", "a \r\nb\r\n", "a\r\nb\r\n"},
		{"no newline", "macro m() ", "macro m()"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TrimTrailingSpace().ProcessContent("Macro.n", []byte(tt.input))
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEnsureFinalNewline(t *testing.T) {
	tests := map[string]string{
		"":      "",
		"a":     "a\n",
		"a\n":   "a\n",
		"a\r\n": "a\r\n",
	}
	for in, want := range tests {
		got, err := EnsureFinalNewline().ProcessContent("Macro.n", []byte(in))
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != want {
			t.Errorf("EnsureFinalNewline(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLineEndings(t *testing.T) {
	in := []byte("a\r\nb\nc")

	crlf, _ := LineEndings(CRLF).ProcessContent("Macro.n", in)
	if string(crlf) != "a\r\nb\r\nc" {
		t.Errorf("CRLF: got %q", crlf)
	}

	lf, _ := LineEndings(LF).ProcessContent("Macro.n", in)
	if string(lf) != "a\nb\nc" {
		t.Errorf("LF: got %q", lf)
	}
}
