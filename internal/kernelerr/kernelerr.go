// Package kernelerr gives the simulation kernel's error taxonomy a
// machine-readable shape: sentinel kinds that the dispatch layer can
// match with errors.Is/errors.As when translating a failed operation
// into an ErrorResponsePayload.
package kernelerr

import "fmt"

// Kind classifies a kernel error into one of the families the
// dispatch layer knows how to report back to a submitting agent.
type Kind string

const (
	KindInvalidArgument   Kind = "InvalidArgument"
	KindInsufficientFunds Kind = "InsufficientFunds"
	KindUnknownBookID     Kind = "UnknownBookId"
	KindUnknownPayload    Kind = "UnknownPayloadType"
	KindOrderRejection    Kind = "OrderRejection"
)

// Cause is a specific, named failure within a Kind, e.g.
// "InsufficientFree" within KindInsufficientFunds.
type Cause string

const (
	CauseInvalidDecimalPlaces  Cause = "InvalidDecimalPlaces"
	CauseInvalidFeeRate        Cause = "InvalidFeeRate"
	CauseInvalidRange          Cause = "InvalidRange"
	CauseMalformedBookState    Cause = "MalformedBookState"
	CauseInsufficientFree      Cause = "InsufficientFree"
	CauseInsufficientReserved  Cause = "InsufficientReserved"
	CauseUnknownBookID         Cause = "UnknownBookId"
	CauseUnknownPayloadType    Cause = "UnknownPayloadType"
	CausePostOnlyCross         Cause = "PostOnlyCross"
	CauseFillOrKillUnsatisfied Cause = "FillOrKillUnsatisfiable"
	CauseSelfTradePrevented    Cause = "SelfTradePrevented"
	CauseExpiredTimeInForce    Cause = "ExpiredTimeInForce"
)

// Error is a kernel operation failure carrying its Kind and Cause so
// the dispatch layer never needs to string-match an error message.
type Error struct {
	Kind    Kind
	Cause   Cause
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Cause)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Cause, e.Message)
}

// New builds a kernel error for the given kind/cause pair.
func New(kind Kind, cause Cause, format string, args ...any) *Error {
	return &Error{Kind: kind, Cause: cause, Message: fmt.Sprintf(format, args...)}
}

// Is supports errors.Is comparisons against a Kind-and-Cause sentinel
// built with New (message ignored).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Cause == t.Cause
}
