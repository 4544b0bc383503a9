package radiance

import "fmt"

// RequestError is returned when the HTTP exchange fails, either at the
// transport level (StatusCode is 0) or because the endpoint answered with
// a status other than 200.
type RequestError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("query request failed: %v", e.Err)
	}
	return fmt.Sprintf("query failed with status %d: %s", e.StatusCode, e.Body)
}

func (e *RequestError) Unwrap() error { return e.Err }

// DecodeError is returned when a 200 response cannot be turned into rows.
type DecodeError struct {
	Body string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode query response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
