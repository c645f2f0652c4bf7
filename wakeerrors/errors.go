// Package wakeerrors provides a standard error definition for use across
// the wake front-end's driver and collaborators. Each error is assigned a
// class of error (kind) and an operation with optional arguments. Errors
// may be chained, and thus can be used to annotate upstream errors.
//
// Package wakeerrors provides functions Errorf and New as convenience
// constructors, so that users need import only one error package.
//
// This is for errors that cross component boundaries before a source
// location exists to pin a diagnostics.Diagnostic to (a file that could
// not be opened, invalid UTF-8 on read, an internal invariant violation).
// Once a SourceFile exists, lexical/syntactic/semantic problems are
// reported as diagnostics.Diagnostic, not wakeerrors.Error.
//
// The API was inspired by package upspin.io/errors, by way of
// github.com/grailbio/reflow/errors.
package wakeerrors

import (
	"bytes"
	"context"
	goerrors "errors"
	"fmt"
	"os"
)

// Separator is inserted between chained errors while rendering.
var Separator = ":\n\t"

// Kind denotes the type of the error.
type Kind int

const (
	// Other denotes an unknown error.
	Other Kind = iota
	// Canceled denotes a cancellation error (e.g. the driver's errgroup
	// context was canceled because a sibling file failed).
	Canceled
	// NotExist denotes an error originating from a nonexistent resource,
	// such as a SourceFile path that does not exist.
	NotExist
	// Invalid indicates malformed input, such as a source file that is
	// not valid UTF-8.
	Invalid
	// Fatal denotes an unrecoverable internal invariant violation.
	Fatal

	maxKind
)

// String renders a human-readable description of kind k.
func (k Kind) String() string {
	switch k {
	default:
		return "unknown error"
	case Canceled:
		return "canceled"
	case NotExist:
		return "resource does not exist"
	case Invalid:
		return "invalid input"
	case Fatal:
		return "fatal"
	}
}

// Error defines a wake front-end error. It indicates an error associated
// with an operation (and arguments), and may wrap another error.
//
// Errors should be constructed by E.
type Error struct {
	// Kind is the error's type.
	Kind Kind
	// Op is a one-word description of the operation that errored.
	Op string
	// Arg is an (optional) list of arguments to the operation.
	Arg []string
	// Err is this error's underlying error: this error is caused by Err.
	Err error
}

// E is used to construct errors from a set of arguments; each must be one
// of the following types:
//
//	string
//		The first string argument is taken as the error's Op; subsequent
//		arguments are taken as the error's Arg.
//	Kind
//		Taken as the error's Kind.
//	error
//		Taken as the error's underlying error.
//
// If the underlying error is another *Error and no Kind was given, the
// Kind is inherited from it. If the underlying error is context.Canceled,
// the Kind is set to Canceled. If it is an os.IsNotExist error, the Kind
// is set to NotExist.
func E(args ...interface{}) error {
	if len(args) == 0 {
		panic("no args")
	}
	e := new(Error)
	for _, arg := range args {
		switch arg := arg.(type) {
		case string:
			if e.Op == "" {
				e.Op = arg
			} else {
				e.Arg = append(e.Arg, arg)
			}
		case Kind:
			e.Kind = arg
		case *Error:
			copy := *arg
			e.Err = &copy
		case error:
			e.Err = arg
		default:
			fmt.Fprintf(os.Stderr, "wakeerrors.E: bad call (type %T): %v\n", arg, args)
			return Errorf("unknown type %T, value %v in error call", arg, arg)
		}
	}
	if e.Err == nil {
		return e
	}
	switch prev := e.Err.(type) {
	case *Error:
		if prev.Kind == e.Kind {
			e.Kind = prev.Kind
			prev.Kind = Other
		} else if e.Kind == Other {
			e.Kind = prev.Kind
			prev.Kind = Other
		}
		if prev.Op == "" && prev.Kind == Other {
			e.Err = prev.Err
		}
	default:
		if e.Kind != Other {
			break
		}
		switch {
		case goerrors.Is(e.Err, context.Canceled):
			e.Kind = Canceled
		case os.IsNotExist(e.Err):
			e.Kind = NotExist
		}
	}
	return e
}

func pad(b *bytes.Buffer, s string) {
	if b.Len() == 0 {
		return
	}
	b.WriteString(s)
}

// Error renders this error and its chain of underlying errors, separated
// by Separator.
func (e *Error) Error() string {
	return e.ErrorSeparator(Separator)
}

// ErrorSeparator renders this error and its chain of underlying errors,
// separated by sep.
func (e *Error) ErrorSeparator(sep string) string {
	if e == nil {
		return "<nil>"
	}
	b := new(bytes.Buffer)
	if e.Op != "" {
		b.WriteString(e.Op)
		for i := range e.Arg {
			b.WriteString(" " + e.Arg[i])
		}
	}
	if e.Kind != Other {
		pad(b, ": ")
		b.WriteString(e.Kind.String())
	}
	if e.Err != nil {
		if err, ok := e.Err.(*Error); ok {
			pad(b, sep)
			b.WriteString(err.ErrorSeparator(sep))
		} else {
			pad(b, ": ")
			b.WriteString(e.Err.Error())
		}
	}
	return b.String()
}

// Errorf is an alternate spelling of fmt.Errorf.
var Errorf = fmt.Errorf

// New is an alternate spelling of errors.New.
var New = goerrors.New

// Recover recovers any error into an *Error. If err is already an
// *Error, it is returned as-is; otherwise it is wrapped.
func Recover(err error) *Error {
	if err == nil {
		return nil
	}
	if err, ok := err.(*Error); ok {
		return err
	}
	return E(err).(*Error)
}

// Is reports whether err's Kind equals k. A nil err is never of any
// Kind, including Other.
func Is(k Kind, err error) bool {
	if err == nil {
		return false
	}
	return Recover(err).Kind == k
}
