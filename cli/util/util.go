// Package util has some CLI related utility code, mirroring the shape of
// a typical go-arg-based command driver: a shared Data bundle passed into
// CLI(), and a consistent error wrapper for parse failures.
package util

import (
	"strings"

	"github.com/twoentartian/tydi-lang-2-sub000/lang/errwrap"
)

// CliParseError returns a consistent error if we have a CLI parsing issue.
func CliParseError(err error) error {
	return errwrap.Wrapf(err, "cli parse error")
}

// SafeProgram returns program up to its first space, dropping any trailing
// arguments that some platforms include in argv[0] (go-arg echoes argv[0]
// verbatim). A leading directory path is kept as it is.
func SafeProgram(program string) string {
	split := strings.Split(program, " ")
	return split[0]
}

// Data is a struct of values that we usually pass to the main CLI function.
type Data struct {
	Program string
	Version string
	Tagline string
	Args    []string // os.Args usually
}
