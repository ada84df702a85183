package zca

import (
	"errors"
	"fmt"
	"strings"
)

// Evaluation failures. Each aborts only the configuration being evaluated.
var (
	// ErrInvalidFlowState is returned for malformed gas-dynamic inputs (γ ≤ 1, M < 0, Pt/P < 1, ...).
	ErrInvalidFlowState = errors.New("invalid flow state")
	// ErrInfeasibleCycle is returned when a cycle configuration cannot be solved thermodynamically.
	ErrInfeasibleCycle = errors.New("infeasible cycle")
	// ErrInvalidVelocityRatio is returned when the propulsor would decelerate the flow.
	ErrInvalidVelocityRatio = errors.New("invalid velocity ratio")
	// ErrUnitMismatch is returned when a quantity does not carry the expected dimension.
	ErrUnitMismatch = errors.New("unit mismatch")
	// ErrUnknownFuel is returned for a fuel name or a fuel missing from a fuel table.
	ErrUnknownFuel = errors.New("unknown fuel")
)

// ParamError attaches the operation and the offending parameter values to one of the
// sentinel errors above.
type ParamError struct {
	Op      string
	Kind    error
	Msg     string
	keyvals []interface{}
}

func (e *ParamError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString(": ")
	b.WriteString(e.Kind.Error())
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if len(e.keyvals) > 0 {
		b.WriteString(" (")
		for i := 0; i < len(e.keyvals); i += 2 {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%v=%v", e.keyvals[i], e.keyvals[i+1])
		}
		b.WriteString(")")
	}
	return b.String()
}

// Unwrap returns the sentinel so that errors.Is works.
func (e *ParamError) Unwrap() error {
	return e.Kind
}

// Keyvals returns the offending parameters as alternating keys and values, ready to be
// passed to a go-kit logger.
func (e *ParamError) Keyvals() []interface{} {
	kv := make([]interface{}, len(e.keyvals))
	copy(kv, e.keyvals)
	return kv
}

// Param returns the value of the named parameter, if it was attached.
func (e *ParamError) Param(name string) (interface{}, bool) {
	for i := 0; i < len(e.keyvals); i += 2 {
		if e.keyvals[i] == name {
			return e.keyvals[i+1], true
		}
	}
	return nil, false
}

func paramErr(kind error, op, msg string, keyvals ...interface{}) *ParamError {
	if len(keyvals)%2 != 0 {
		keyvals = append(keyvals, "(MISSING)")
	}
	return &ParamError{Op: op, Kind: kind, Msg: msg, keyvals: keyvals}
}
