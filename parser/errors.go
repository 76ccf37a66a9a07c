package parser

import (
	"fmt"
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
	"log/slog"
)

type ErrCode int

const (
	Unclassified ErrCode = iota
	Syntax
	UndefinedName
	InvalidClass
)

// Error is a problem with a statement, located at the token that caused it
type Error struct {
	Code    ErrCode
	Pos     lexer.Position
	Message string
	cause   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: (E%03d) %s", e.Pos, e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// newSyntaxError locates err in filename. Errors raised while capturing a
// token carry no position, so they only get the filename.
func newSyntaxError(filename string, err error) *Error {
	var perr participle.Error
	if errors.As(err, &perr) {
		pos := perr.Position()
		if pos.Filename == "" {
			pos.Filename = filename
		}
		return &Error{Code: Syntax, Pos: pos, Message: perr.Message(), cause: err}
	}
	return &Error{Code: Unclassified, Pos: lexer.Position{Filename: filename}, Message: err.Error(), cause: err}
}

// Errors collects the errors of every statement of a Program.
// A nil *Errors holds no errors.
type Errors struct {
	errs []*Error
}

func (r *Errors) With(err ...*Error) *Errors {
	if r == nil {
		return &Errors{errs: err}
	}
	r.errs = append(r.errs, err...)
	return r
}

func (r *Errors) Errors() []*Error {
	if r == nil {
		return nil
	}
	return r.errs
}

func (r *Errors) HasError() bool {
	if r == nil {
		return false
	}
	return len(r.errs) > 0
}

// Err returns nil when there are no errors, so that callers can return it as an error
func (r *Errors) Err() error {
	if !r.HasError() {
		return nil
	}
	return r
}

func (r *Errors) Error() string {
	switch len(r.errs) {
	case 0:
		return "no errors"
	case 1:
		return r.errs[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more errors)", r.errs[0], len(r.errs)-1)
	}
}

func (r *Errors) LogValue() slog.Value {
	var vals []slog.Attr
	for i, v := range r.Errors() {
		vals = append(vals, slog.Attr{
			Key: fmt.Sprint("e", i),
			Value: slog.GroupValue(
				slog.String("pos", v.Pos.String()),
				slog.Int("code", int(v.Code)),
				slog.String("msg", v.Message),
			),
		})
	}
	return slog.GroupValue(vals...)
}
