package monday

import "fmt"

// Kind classifies a remote failure so the interface can phrase it and decide
// whether retrying makes sense.
type Kind int

const (
	// KindNetwork covers transport failures and timeouts.
	KindNetwork Kind = iota
	// KindAuth covers rejected or missing credentials.
	KindAuth
	// KindNotFound covers missing boards, groups or items.
	KindNotFound
	// KindAPI covers GraphQL-level errors returned by the service.
	KindAPI
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not-found"
	case KindAPI:
		return "api"
	}
	return "unknown"
}

// RemoteError is any failure talking to the tracking service.
type RemoteError struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Op, e.Message, e.Kind)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v (%s)", e.Op, e.Err, e.Kind)
	}
	return fmt.Sprintf("%s failed (%s)", e.Op, e.Kind)
}

func (e *RemoteError) Unwrap() error { return e.Err }

func remoteErr(kind Kind, op, message string, err error) *RemoteError {
	return &RemoteError{Kind: kind, Op: op, Message: message, Err: err}
}
