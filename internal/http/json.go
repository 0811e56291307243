package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// WriteJSON writes a JSON response with the given status code and data.
// HEAD requests get the headers and status only.
func WriteJSON(w http.ResponseWriter, r *http.Request, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if r != nil && r.Method == http.MethodHead {
		return
	}
	// Response writer errors (e.g., client disconnect) can't be recovered from here.
	_, _ = buf.WriteTo(w)
}
