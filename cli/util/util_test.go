package util

import "testing"

func TestSafeProgram(t *testing.T) {
	cases := map[string]string{
		"tydic":                "tydic",
		"/usr/local/bin/tydic": "/usr/local/bin/tydic",
		"tydic extra args":     "tydic",
	}
	for in, want := range cases {
		if got := SafeProgram(in); got != want {
			t.Errorf("SafeProgram(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCliParseError(t *testing.T) {
	err := CliParseError(errString("bad flag"))
	if err == nil {
		t.Fatalf("expected a non-nil wrapped error")
	}
}

type errString string

func (e errString) Error() string { return string(e) }
