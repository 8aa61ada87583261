// Package serrors is a unified errors package for signature contracts so that
// contract violations can be formatted in a unified way and handled in a
// unified way. Every failure carries a discriminated kind so that callers can
// match on the kind of violation instead of parsing message strings.
package serrors

import "fmt"

type (
	// ErrorKind is an enum to describe which stage of enforcement failed.
	ErrorKind int
	// Error captures all errors raised by the contract engine. It distinguishes
	// between decoration-time arity failures, call-time argument and return
	// value failures, and descriptor expression parse failures, and will format
	// them accordingly.
	Error struct {
		Kind     ErrorKind
		Value    any    // offending value for argument/return mismatches
		Expected string // rendering of the descriptor that rejected the value
		Position int    // argument index for argument mismatches
		Want     int    // declared descriptor count for arity mismatches
		Got      int    // target parameter count for arity mismatches
		Line     int    // parse failure position
		Column   int
		Err      error
	}
)

const (
	// ArityMismatch is a decoration-time failure where the declared argument
	// descriptor count does not match the target's parameter count.
	ArityMismatch ErrorKind = iota
	// ArgumentMismatch is a call-time failure where an actual argument does not
	// match its declared descriptor. The target never ran.
	ArgumentMismatch
	// ReturnMismatch is a call-time failure where the value the target returned
	// does not match the declared return descriptor. The target already ran.
	ReturnMismatch
	// ParseErr is a failure while parsing a descriptor expression or value literal.
	ParseErr
)

func (err *Error) Error() string {
	switch err.Kind {
	case ArityMismatch:
		return fmt.Sprintf("type count (%v) does not match argument count (%v)", err.Want, err.Got)
	case ArgumentMismatch:
		return fmt.Sprintf("argument %#v does not match expected type %v", err.Value, err.Expected)
	case ReturnMismatch:
		return fmt.Sprintf("returned value %#v does not match expected type %v", err.Value, err.Expected)
	case ParseErr:
		return fmt.Sprintf("parse error: %v:%v %v", err.Line, err.Column, err.Err)
	default:
		return err.Err.Error()
	}
}

func (err *Error) Unwrap() error { return err.Err }
