package utils

import "testing"

func TestCanonicalize(t *testing.T) {
	cases := []struct{ in, want string }{
		{"piano", "PIANO"},
		{"Jazz Age", "JAZZAGE"},
		{"e-mail", "EMAIL"},
		{"O'Neill", "ONEILL"},
		{"123", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Canonicalize(tc.in); got != tc.want {
			t.Errorf("Canonicalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIsCanonical(t *testing.T) {
	for _, s := range []string{"PIANO", "A"} {
		if !IsCanonical(s) {
			t.Errorf("IsCanonical(%q) = false", s)
		}
	}
	for _, s := range []string{"", "piano", "PIAN0", "JAZZ AGE"} {
		if IsCanonical(s) {
			t.Errorf("IsCanonical(%q) = true", s)
		}
	}
}

func TestIsPhrase(t *testing.T) {
	if !IsPhrase("Jazz Age") || !IsPhrase("e-mail") {
		t.Error("phrases not detected")
	}
	if IsPhrase("piano") {
		t.Error("single word flagged as phrase")
	}
}

func TestTitleCase(t *testing.T) {
	cases := []struct{ in, want string }{
		{"OBOE", "Oboe"},
		{"a", "A"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := TitleCase(tc.in); got != tc.want {
			t.Errorf("TitleCase(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestContainsDigits(t *testing.T) {
	if !ContainsDigits("PIAN0") {
		t.Error("digit missed")
	}
	if ContainsDigits("PIANO") {
		t.Error("false positive")
	}
}
