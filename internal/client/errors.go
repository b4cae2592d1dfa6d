// ABOUTME: Normalized error type returned by every gateway operation
// ABOUTME: Carries a failure kind, HTTP status, and a message safe to show users

package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies a failed operation
type Kind int

const (
	// KindNetwork means the request was sent but no response arrived
	KindNetwork Kind = iota + 1
	// KindRejected means the backend answered with a non-2xx status
	KindRejected
	// KindContract means a 2xx response lacked something the caller requires
	KindContract
	// KindValidation means input was refused before any request was made
	KindValidation
	// KindCanceled means the caller's context ended first
	KindCanceled
	// KindStorage means the session could not be persisted locally
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindRejected:
		return "rejected"
	case KindContract:
		return "contract"
	case KindValidation:
		return "validation"
	case KindCanceled:
		return "canceled"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// User-facing messages shared across operations
const (
	MsgNoResponse     = "No response from server. Please check your connection."
	MsgTokenMissing   = "Token not found in response"
	MsgSessionExpired = "Session expired. Please log in again."
	MsgBadResponse    = "Invalid response from server"
)

// ErrTokenMissing is the cause of a login that succeeded without a token
var ErrTokenMissing = errors.New("token not found in response")

// Error is the failure half of every gateway result
type Error struct {
	Kind    Kind
	Status  int
	Message string
	// SessionExpired is set when a protected call got a 401 and the session was cleared
	SessionExpired bool
	Err            error

	// fromServer is set when Message came from the response payload
	fromServer bool
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message returns the text to show a user for err
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// IsKind reports whether err is a gateway error of kind k
func IsKind(err error, k Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == k
}

// IsSessionExpired reports whether err ended the session
func IsSessionExpired(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.SessionExpired
}

// errorPayload is the structured body the backend sends with failures
type errorPayload struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// handleErrorResponse builds a rejection from a non-2xx response.
// The message is taken from the payload's message field, then its error field.
func handleErrorResponse(status int, body []byte) *Error {
	e := &Error{
		Kind:    KindRejected,
		Status:  status,
		Message: fmt.Sprintf("Request failed with status %d", status),
		Err:     fmt.Errorf("backend returned status %d", status),
	}

	var payload errorPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return e
	}
	switch {
	case strings.TrimSpace(payload.Message) != "":
		e.Message = payload.Message
		e.fromServer = true
	case strings.TrimSpace(payload.Error) != "":
		e.Message = payload.Error
		e.fromServer = true
	}
	return e
}

// withDefault replaces a rejection message that did not come from the backend
// with the operation's own default.
func withDefault(err error, msg string) error {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return &Error{Kind: KindContract, Message: msg, Err: err}
	}
	if apiErr.Kind == KindRejected && !apiErr.fromServer {
		apiErr.Message = msg
	}
	return err
}

func contractError(status int, err error) *Error {
	return &Error{
		Kind:    KindContract,
		Status:  status,
		Message: MsgBadResponse,
		Err:     err,
	}
}

func isSuccess(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}

func errMissingField(name string) error {
	return fmt.Errorf("response missing %q", name)
}
