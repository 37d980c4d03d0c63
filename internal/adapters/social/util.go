package social

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// StatusError wraps non-2xx HTTP responses from the social API
type StatusError struct {
	Status int
	Body   string
}

// Error interface
func (e *StatusError) Error() string {
	return fmt.Sprintf("social api status %d", e.Status)
}

// HTTPStatus interface
func (e *StatusError) HTTPStatus() int { return e.Status }

// retryAfter honors a Retry-After header when present, falling back
// to the computed backoff
func retryAfter(h http.Header, fallback time.Duration) time.Duration {
	if s := h.Get("Retry-After"); s != "" {
		if sec, err := strconv.Atoi(s); err == nil && sec > 0 {
			return time.Duration(sec) * time.Second
		}
	}
	return fallback
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 512))
	return rc.Close()
}

// IsNotFound reports whether err is a StatusError with 404 status
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == http.StatusNotFound
}
