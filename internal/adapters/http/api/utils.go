package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/okian/agora/internal/adapters/repository"
)

// Default pagination values applied when the query omits them.
const (
	defaultPage     = 1
	defaultPageSize = 20
)

// queryInt parses an optional positive integer query parameter.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, ErrBadRequest
	}
	return n, nil
}

// queryFloat parses an optional non-negative float query parameter.
func queryFloat(r *http.Request, name string) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 0 {
		return 0, ErrBadRequest
	}
	return f, nil
}

// viewerID extracts the requesting subject from the X-User-ID header.
func viewerID(r *http.Request) string {
	return r.Header.Get("X-User-ID")
}

// isNotFound translates upstream not-found errors to 404.
func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
