package llm

import (
	"encoding/json"
	"fmt"
)

// genericAPIError is reported when the upstream gives no message.
const genericAPIError = "API error"

// APIError is a failed model call.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = genericAPIError
	}
	if e.StatusCode == 0 {
		return msg
	}
	return fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
}

// parseAPIError extracts the upstream error.message from a non-200 response.
func parseAPIError(statusCode int, body []byte) error {
	var parsed struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	_ = json.Unmarshal(body, &parsed)
	return &APIError{StatusCode: statusCode, Message: parsed.Error.Message}
}
