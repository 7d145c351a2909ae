package entities

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingField         = errors.New("required event fields missing")
	ErrLockTimeout          = errors.New("transaction lock not acquired")
	ErrDuplicateTransaction = errors.New("purchase already exists for transaction")
)

// MissingFieldError lists the payload keys an event type requires but did not receive.
type MissingFieldError struct {
	Type    EventType
	Missing []string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("required %s parameters missing (%s)", e.Type, strings.Join(e.Missing, ", "))
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// GatewayErrorKind classifies why a gateway call did not produce a usable response.
type GatewayErrorKind string

const (
	GatewayErrorCommunication     GatewayErrorKind = "communication"
	GatewayErrorHTTPStatus        GatewayErrorKind = "http"
	GatewayErrorMalformedResponse GatewayErrorKind = "malformed"
)

type GatewayError struct {
	Gateway    string
	Kind       GatewayErrorKind
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *GatewayError) Error() string {
	var b strings.Builder
	b.WriteString(e.Gateway)
	b.WriteString(": ")
	b.WriteString(string(e.Kind))
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " %d", e.StatusCode)
	}
	if e.Code != "" {
		b.WriteString(" [" + e.Code + "]")
	}
	if e.Message != "" {
		b.WriteString(": " + e.Message)
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// ErrorCode is the short code recorded on *-fail events.
func (e *GatewayError) ErrorCode() string {
	switch {
	case e.Code != "":
		return e.Code
	case e.Kind == GatewayErrorHTTPStatus:
		return fmt.Sprintf("http-%d", e.StatusCode)
	case e.Kind == GatewayErrorCommunication:
		return "noresponse"
	default:
		return string(e.Kind)
	}
}
