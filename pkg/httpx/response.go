package httpx

import (
	"encoding/json"
	"net/http"
)

// MsgUnauthorized is the single message every auth gate rejection carries.
const MsgUnauthorized = "Unauthorized"

// ErrorMessage is one entry of an {"errors": [...]} response body. Param
// names the offending request field for validation failures.
type ErrorMessage struct {
	Msg   string `json:"msg"`
	Param string `json:"param,omitempty"`
}

// ErrorsBody is the error envelope shared by every JSON endpoint.
type ErrorsBody struct {
	Errors []ErrorMessage `json:"errors"`
}

// WriteJSON writes v as JSON with the given status code.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteErrors writes an {"errors": [...]} body.
func WriteErrors(w http.ResponseWriter, code int, msgs ...ErrorMessage) {
	if msgs == nil {
		msgs = []ErrorMessage{}
	}
	WriteJSON(w, code, ErrorsBody{Errors: msgs})
}

// WriteUnauthorized writes the 401 auth gate response.
func WriteUnauthorized(w http.ResponseWriter) {
	WriteErrors(w, http.StatusUnauthorized, ErrorMessage{Msg: MsgUnauthorized})
}

// WriteServerError writes the plain-text 500 response. Callers log the
// underlying error; nothing about it reaches the client.
func WriteServerError(w http.ResponseWriter) {
	NoCache(w)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte("Server Error"))
}

// NoCache stops intermediaries from caching responses carrying tokens or
// account data.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
