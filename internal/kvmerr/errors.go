// Package kvmerr defines a small error-kind taxonomy so the server, client,
// config and discovery layers report failures the caller can dispatch on
// without string-matching.
package kvmerr

import "fmt"

type Kind int

const (
	KindIo Kind = iota
	KindDecode
	KindHandshakeRejected
	KindConfigParse
	KindPlatformHookFailed
	KindBroadcastLag
)

func (k Kind) String() string {
	switch k {
	case KindIo:
		return "Io"
	case KindDecode:
		return "Decode"
	case KindHandshakeRejected:
		return "HandshakeRejected"
	case KindConfigParse:
		return "ConfigParse"
	case KindPlatformHookFailed:
		return "PlatformHookFailed"
	case KindBroadcastLag:
		return "BroadcastLag"
	default:
		return "Unknown"
	}
}

// Error wraps an underlying cause with a Kind so callers can branch on
// fault category instead of inspecting error strings.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Op)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}
