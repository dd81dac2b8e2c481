package catalog

import "fmt"

// fetchError signals that the model source feed was unreachable or
// answered non-2xx. Fatal to the call that triggered the rebuild.
type fetchError struct {
	msg    string
	status int
}

func (e fetchError) Error() string {
	if e.status != 0 {
		return fmt.Sprintf("catalog fetch: %s (status %d)", e.msg, e.status)
	}
	return "catalog fetch: " + e.msg
}

// ErrFetch wraps a transport-level feed failure.
func ErrFetch(msg string) error { return fetchError{msg: msg} }

// ErrFetchStatus reports a non-2xx feed response.
func ErrFetchStatus(msg string, status int) error { return fetchError{msg: msg, status: status} }

// IsFetchError reports whether err came from the model source feed.
func IsFetchError(err error) bool {
	_, ok := err.(fetchError)
	return ok
}
