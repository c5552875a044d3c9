package api

import (
	"fmt"

	"github.com/itblio/itbl/src/callback"
)

// Failure reasons.
const (
	ReasonInvalidAPIKey  = "Invalid API Key"
	ReasonInvalidRequest = "Invalid Request"
	ReasonServerError    = "Internal Server Error"

	// ReasonParseJSON prefixes the decoder error of a malformed JSON body.
	ReasonParseJSON = "Could not parse json: "
)

// Error is a failed request: a human readable reason and, when the server
// answered, the raw body it returned. StatusCode is 0 when no response was
// received.
type Error struct {
	Reason     string
	Data       []byte
	StatusCode int
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (status %d)", e.Reason, e.StatusCode)
	}
	return e.Reason
}

// Deliver hands the outcome of Do to the matching callback. Errors that are
// not *Error are reported with their text as reason and no data.
func Deliver(data map[string]interface{}, err error, onSuccess callback.OnSuccessHandler, onFailure callback.OnFailureHandler) {
	if err == nil {
		onSuccess.Call(data)
		return
	}

	if apiErr, ok := err.(*Error); ok {
		onFailure.Call(callback.String(apiErr.Reason), apiErr.Data)
		return
	}

	onFailure.Call(callback.String(err.Error()), nil)
}

func reasonForStatus(status int) string {
	switch {
	case status == 401:
		return ReasonInvalidAPIKey
	case status >= 400 && status < 500:
		return ReasonInvalidRequest
	case status >= 500:
		return ReasonServerError
	default:
		return fmt.Sprintf("Received non-200 response: %d", status)
	}
}
