package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrURL is returned by New when the base URL cannot be used.
var ErrURL = errors.New("invalid server url")

// BadRequestError is a 4xx response: the server rejected the batch.
type BadRequestError struct {
	Status int
	// Body is the server's message, taken from {"error": "..."} when the
	// response is JSON and the raw body otherwise.
	Body string
}

func (e *BadRequestError) Error() string {
	return fmt.Sprintf("influx: bad request (%d): %s", e.Status, e.Body)
}

// ServerError is any other non-2xx response.
type ServerError struct {
	Status int
	Body   string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("influx: server error (%d): %s", e.Status, e.Body)
}

type serverMessage struct {
	Error string `json:"error"`
}

// responseMessage extracts the error message from a response body.
func responseMessage(body []byte) string {
	var msg serverMessage
	if err := json.Unmarshal(body, &msg); err == nil && msg.Error != "" {
		return msg.Error
	}

	return strings.TrimSpace(string(body))
}
