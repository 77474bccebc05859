package http

import (
	"encoding/json"
	"net/http"

	"github.com/newcreaturechurch/church-api/pkg/httpx"
)

// decodeBestEffort parses the request body into dst, ignoring any failure.
// For endpoints where an absent body is acceptable.
func decodeBestEffort(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// decodeJSON parses the request body into dst. On failure it writes the error
// response and reports false; handlers just return.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(dst); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, codeInvalidBody, "Request body is not valid JSON")
		return false
	}
	return true
}
