// Package llm wraps the text-generation providers used for key-point
// extraction behind one Client interface. Every client reports failures as
// *Error so callers can switch on the Kind instead of reading messages.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrEmptyResponse is returned when a provider answers with no text.
var ErrEmptyResponse = errors.New("llm: empty response")

// Request is a single system+user generation call against one model.
type Request struct {
	Model       string
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

type Client interface {
	Name() string
	Generate(ctx context.Context, req Request) (string, error)
}

type ErrorKind int

const (
	KindOther ErrorKind = iota
	// KindModelUnavailable means this model id is unknown or unsupported.
	KindModelUnavailable
	// KindQuotaExceeded means the whole account is rate limited or out of quota.
	KindQuotaExceeded
)

func (k ErrorKind) String() string {
	switch k {
	case KindModelUnavailable:
		return "model_unavailable"
	case KindQuotaExceeded:
		return "quota_exceeded"
	default:
		return "other"
	}
}

type Error struct {
	Provider   string
	Model      string
	Kind       ErrorKind
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s (%s): %v", e.Provider, e.Model, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind carried by err, or KindOther.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindOther
}

// NewError wraps err, classifying it by HTTP status first and by message
// text when the status says nothing.
func NewError(provider, model string, status int, err error) *Error {
	kind := kindFromStatus(status)
	if kind == KindOther && err != nil {
		kind = kindFromMessage(err.Error())
	}
	return &Error{Provider: provider, Model: model, Kind: kind, StatusCode: status, Err: err}
}

func kindFromStatus(status int) ErrorKind {
	switch status {
	case http.StatusNotFound:
		return KindModelUnavailable
	case http.StatusTooManyRequests:
		return KindQuotaExceeded
	}
	return KindOther
}

var (
	quotaMarkers       = []string{"resource_exhausted", "quota", "rate limit", "rate_limit", "ratelimit"}
	unavailableMarkers = []string{"not found", "not supported", "not_found", "does not exist", "decommissioned"}
)

func kindFromMessage(msg string) ErrorKind {
	lower := strings.ToLower(msg)
	for _, m := range quotaMarkers {
		if strings.Contains(lower, m) {
			return KindQuotaExceeded
		}
	}
	for _, m := range unavailableMarkers {
		if strings.Contains(lower, m) {
			return KindModelUnavailable
		}
	}
	return KindOther
}
