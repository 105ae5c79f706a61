package apiclient

import "fmt"

// NetworkError wraps a transport-level failure: DNS, dial, TLS, or a broken
// response body. The request never produced a usable HTTP status.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("apiclient: %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError is a non-2xx response. Detail carries the server-supplied
// `detail` field when the error body was parseable JSON; the Error string
// falls back to "HTTP <status>: <status text>" otherwise.
type HTTPError struct {
	Status     int
	StatusText string
	Detail     string
}

func (e *HTTPError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.StatusText)
}

// ParseError is a 2xx response whose body did not decode as the declared
// content type. Error bodies are never ParseErrors; those fall back to the
// generic HTTPError message.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("apiclient: decode response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
