package ir

import (
	"errors"
	"fmt"

	"github.com/vektah/gqlparser/v2/gqlerror"
)

// ParseError reports a malformed schema document. It aborts the whole run.
type ParseError struct {
	File    string `json:"file"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s:%d:%d: %s", e.File, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("parse %s: %s", e.File, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Err }

func newParseError(file string, err error) *ParseError {
	pe := &ParseError{File: file, Message: err.Error(), Err: err}
	var gerr *gqlerror.Error
	if errors.As(err, &gerr) {
		pe.Message = gerr.Message
		if len(gerr.Locations) > 0 {
			pe.Line = gerr.Locations[0].Line
			pe.Column = gerr.Locations[0].Column
		}
	}
	return pe
}
