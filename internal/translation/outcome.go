package translation

import (
	"fmt"

	"codeberg.org/snonux/fanyi/internal/stream"
)

// Kind tells which variant of Outcome is populated.
type Kind int

const (
	KindFailure Kind = iota
	KindDictionary
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindFailure:
		return "failure"
	case KindDictionary:
		return "dictionary"
	case KindText:
		return "text"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Outcome is the result of one translation. Exactly one of Dictionary,
// Text or Failure is meaningful, as given by Kind.
type Outcome struct {
	Kind    Kind
	Request Request
	// Event names the stream event the result was taken from.
	Event      string
	Dictionary *stream.DictEvent
	Text       string
	Failure    *Failure
}

// OK reports whether the outcome carries a translation.
func (o Outcome) OK() bool {
	return o.Kind != KindFailure
}

// ErrorKind classifies translation failures.
type ErrorKind int

const (
	// ErrTransport covers connection errors, request timeouts and non-2xx
	// HTTP responses.
	ErrTransport ErrorKind = iota + 1
	// ErrDecode is a malformed frame. It is absorbed by the stream parser
	// and never reaches an Outcome.
	ErrDecode
	// ErrAuthRejected is the in-band token rejection.
	ErrAuthRejected
	// ErrProtocol is any other non-zero frame status or an unexpected
	// response format.
	ErrProtocol
	// ErrNoUsableResult means the stream completed without a known event.
	ErrNoUsableResult
	// ErrTokenAcquisition means no replacement token could be minted.
	ErrTokenAcquisition
	// ErrStreamTimeout means the stream did not finish in time.
	ErrStreamTimeout
	// ErrInvalidQuery means there was nothing to translate.
	ErrInvalidQuery
)

func (k ErrorKind) String() string {
	switch k {
	case ErrTransport:
		return "transport"
	case ErrDecode:
		return "decode"
	case ErrAuthRejected:
		return "auth-rejected"
	case ErrProtocol:
		return "protocol"
	case ErrNoUsableResult:
		return "no-usable-result"
	case ErrTokenAcquisition:
		return "token-acquisition"
	case ErrStreamTimeout:
		return "stream-timeout"
	case ErrInvalidQuery:
		return "invalid-query"
	default:
		return fmt.Sprintf("error(%d)", int(k))
	}
}

// Failure is a terminal translation error with a human-readable reason.
type Failure struct {
	Kind   ErrorKind
	Reason string
	Err    error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %v", f.Reason, f.Err)
	}
	return f.Reason
}

func (f *Failure) Unwrap() error {
	return f.Err
}

func failure(req Request, kind ErrorKind, reason string, err error) Outcome {
	return Outcome{
		Kind:    KindFailure,
		Request: req,
		Failure: &Failure{Kind: kind, Reason: reason, Err: err},
	}
}
