package authsdk

import (
	"encoding/json"
	"net/http"
	"strings"
)

// APIError is any non-success response from the server.
type APIError struct {
	StatusCode int
	Messages   []ErrorMessage
}

func (e *APIError) Error() string {
	if len(e.Messages) == 0 {
		return http.StatusText(e.StatusCode)
	}
	msgs := make([]string, len(e.Messages))
	for i, m := range e.Messages {
		msgs[i] = m.Msg
	}
	return strings.Join(msgs, "; ")
}

// IsUnauthorized reports whether the server rejected the session token.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// parseErrorResponse builds an APIError from a failed response body. JSON
// bodies contribute their messages; anything else (the plain-text 500) is
// kept as a single message.
func parseErrorResponse(resp *http.Response, body []byte) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var envelope ErrorsResponse
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Errors) > 0 {
		apiErr.Messages = envelope.Errors
		return apiErr
	}

	if text := strings.TrimSpace(string(body)); text != "" {
		apiErr.Messages = []ErrorMessage{{Msg: text}}
	}
	return apiErr
}
