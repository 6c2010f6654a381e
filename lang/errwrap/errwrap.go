// Package errwrap contains the small set of error helpers used throughout
// the compiler, adapted from the teacher's util/errwrap package (itself a
// thin shim over github.com/pkg/errors and github.com/hashicorp/go-multierror)
// since that package isn't independently importable outside its own module.
package errwrap

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Wrapf adds a new error onto an existing chain of errors. If err is nil,
// the zero value is returned unchanged, which makes it safe to call
// unconditionally at the end of a function.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// Append safely appends err onto reterr. Either may be nil; if both are
// real errors the result is a *multierror.Error aggregating both, used by
// the post-compile assertion checker to report every failing assertion in
// one pass instead of stopping at the first.
func Append(reterr, err error) error {
	if reterr == nil {
		return err
	}
	if err == nil {
		return reterr
	}
	return multierror.Append(reterr, err)
}

// String returns a string representation of err, or the empty string if
// err is nil.
func String(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
