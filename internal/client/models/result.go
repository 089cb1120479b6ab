package models

// ErrorKind classifies a failed gateway operation so callers can branch
// without probing message text.
type ErrorKind int

const (
	ErrorKindNone ErrorKind = iota
	// ErrorKindNetwork: the request never completed (connectivity).
	ErrorKindNetwork
	// ErrorKindServer: the server answered with an error envelope.
	ErrorKindServer
	// ErrorKindStorage: the local store failed and no fallback was possible.
	ErrorKindStorage
)

// Result is the tagged outcome of every gateway-wrapped operation. The
// success variant carries a typed payload plus degraded-mode flags; the
// failure variant carries an error kind and a user-facing message.
type Result[T any] struct {
	Error   bool
	Kind    ErrorKind
	Message string

	// FromCache marks a success served from the local store while offline.
	FromCache bool
	// Pending marks a submission queued for later sync: a successful
	// degraded outcome, not an error.
	Pending bool

	Value T
}

// None is the payload of operations that return no data.
type None struct{}

// OK wraps a payload in a success result.
func OK[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

// OKNotice wraps a payload in a success result with a user-facing notice.
func OKNotice[T any](v T, msg string) Result[T] {
	return Result[T]{Value: v, Message: msg}
}

// Fail builds a failure result of the given kind.
func Fail[T any](kind ErrorKind, msg string) Result[T] {
	return Result[T]{Error: true, Kind: kind, Message: msg}
}
