package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sjsjaniw/workout-backend/internal/pkg/serr"
)

// ErrorResponse is the body written for every failed request.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func ReadJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	return dec.Decode(out)
}

func WriteJSON(w http.ResponseWriter, status int, resp any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	return enc.Encode(resp)
}

// HandleErr writes err as a JSON error response and logs it. The logged url is
// the request URI as received, before any sub router stripped its prefix.
func HandleErr(w http.ResponseWriter, r *http.Request, err error) {
	url := r.RequestURI
	if url == "" {
		url = r.URL.String()
	}

	attrs := []any{
		"error", err,
		"method", r.Method,
		"url", url,
		"remote_addr", r.RemoteAddr,
	}

	var se *serr.ServiceError
	if errors.As(err, &se) {
		for k, v := range se.Env {
			attrs = append(attrs, k, v)
		}

		if se.StatusCode >= http.StatusInternalServerError {
			slog.Error("request error", attrs...)
		} else {
			slog.Warn("request error", attrs...)
		}

		_ = WriteJSON(w, se.StatusCode, ErrorResponse{Detail: se.Msg})
		return
	}

	slog.Error("request error", attrs...)
	_ = WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Detail: "Internal Server Error"})
}

// PathID parses a positive integer path value.
func PathID(r *http.Request, name string) (int64, error) {
	return parseID(r.PathValue(name), name)
}

// QueryID parses a positive integer query parameter.
func QueryID(r *http.Request, name string) (int64, error) {
	return parseID(r.URL.Query().Get(name), name)
}

func parseID(raw, name string) (int64, error) {
	if raw == "" {
		return 0, serr.NewServiceError(nil, http.StatusBadRequest, "%s is required", name)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		if err == nil {
			err = fmt.Errorf("non-positive id %d", id)
		}

		return 0, serr.NewServiceError(err, http.StatusBadRequest, "%s must be a positive integer", name).
			With(name, raw)
	}

	return id, nil
}
