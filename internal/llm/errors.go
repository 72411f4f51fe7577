package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// ErrorKind classifies a failed call.
type ErrorKind uint8

const (
	// KindUnavailable covers server errors and unreachable providers.
	KindUnavailable ErrorKind = iota + 1
	// KindRateLimited is an HTTP 429.
	KindRateLimited
	// KindInvalidOutput is output that is not JSON or breaks the schema.
	KindInvalidOutput
	// KindTruncated is output cut off at MaxTokens.
	KindTruncated
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnavailable:
		return "provider unavailable"
	case KindRateLimited:
		return "rate limited"
	case KindInvalidOutput:
		return "invalid response"
	case KindTruncated:
		return "response truncated"
	}
	return "llm error"
}

// Error is a classified provider failure. Match it with errors.Is against
// the Err* values below, or errors.As to read RetryAfter and Content.
type Error struct {
	Kind ErrorKind

	// RetryAfter is the server's requested wait, rate limits only.
	RetryAfter time.Duration
	// Content is the raw output of an invalid or truncated reply.
	Content json.RawMessage

	Err error
}

var (
	ErrUnavailable   = &Error{Kind: KindUnavailable}
	ErrRateLimited   = &Error{Kind: KindRateLimited}
	ErrInvalidOutput = &Error{Kind: KindInvalidOutput}
	ErrTruncated     = &Error{Kind: KindTruncated}
)

func (e *Error) Error() string {
	msg := "llm: " + e.Kind.String()
	if e.Kind == KindRateLimited && e.RetryAfter > 0 {
		msg += fmt.Sprintf(" (retry after %s)", e.RetryAfter)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the bare sentinel for e's kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Err == nil && t.Content == nil && t.RetryAfter == 0 && t.Kind == e.Kind
}

// kindOf returns the kind of the first *Error in err's chain, or 0.
func kindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func unavailable(err error) *Error { return &Error{Kind: KindUnavailable, Err: err} }

func invalidOutput(content json.RawMessage, err error) *Error {
	return &Error{Kind: KindInvalidOutput, Content: content, Err: err}
}

// fromStatus classifies an SDK error carrying an HTTP status. header may be
// nil; when present its Retry-After seconds are kept.
func fromStatus(status int, header http.Header, err error) *Error {
	if status != http.StatusTooManyRequests {
		return unavailable(err)
	}
	e := &Error{Kind: KindRateLimited, Err: err}
	if secs, perr := strconv.Atoi(header.Get("Retry-After")); perr == nil && secs > 0 {
		e.RetryAfter = time.Duration(secs) * time.Second
	}
	return e
}
