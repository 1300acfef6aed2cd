package scoresdomain

import (
	"errors"
	"time"
)

// Error kinds. Every rejection the leaderboard produces matches exactly one
// of these with errors.Is.
var (
	ErrBadRequest         = errors.New("bad request")
	ErrPayloadTooLarge    = errors.New("payload too large")
	ErrRateLimited        = errors.New("rate limited")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrUnauthorized       = errors.New("unauthorized")
)

// SubmissionError is a rejected request. Message is safe to show to players;
// Cause, when set, is the underlying infrastructure error and is not.
type SubmissionError struct {
	Kind       error
	Message    string
	Cause      error
	RetryAfter time.Duration
}

func (e *SubmissionError) Error() string {
	if e.Cause != nil {
		return e.Kind.Error() + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Kind.Error() + ": " + e.Message
}

func (e *SubmissionError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

func badRequest(msg string) *SubmissionError {
	return &SubmissionError{Kind: ErrBadRequest, Message: msg}
}

// Player-facing messages.
const (
	MsgInvalidJSON     = "Invalid JSON"
	MsgNameRequired    = "Name is required and must be a string"
	MsgNameEmpty       = "Name cannot be empty"
	MsgScoreOutOfRange = "Score must be an integer between 0 and 1000"
	MsgBodyTooLarge    = "Request body too large"
	MsgRateLimited     = "Too many requests. Please try again later."
	MsgSaveFailed      = "Failed to save high score"
	MsgFetchFailed     = "Failed to fetch high scores"
	MsgUnauthorized    = "Unauthorized"
	MsgNotConfigured   = "Database is not configured. Please set DATABASE_URL environment variable."
	MsgInitFailed      = "Failed to initialize database"
)

// NewPayloadTooLarge reports an oversized body.
func NewPayloadTooLarge() *SubmissionError {
	return &SubmissionError{Kind: ErrPayloadTooLarge, Message: MsgBodyTooLarge}
}

// NewRateLimited reports an exhausted submission budget. retryAfter is how
// long until the oldest counted attempt leaves the window.
func NewRateLimited(retryAfter time.Duration) *SubmissionError {
	return &SubmissionError{Kind: ErrRateLimited, Message: MsgRateLimited, RetryAfter: retryAfter}
}

// NewStorageUnavailable reports a store failure with a player-facing message.
func NewStorageUnavailable(msg string, cause error) *SubmissionError {
	return &SubmissionError{Kind: ErrStorageUnavailable, Message: msg, Cause: cause}
}

// NewUnauthorized reports a missing or wrong admin credential.
func NewUnauthorized() *SubmissionError {
	return &SubmissionError{Kind: ErrUnauthorized, Message: MsgUnauthorized}
}

// NewInvalidJSON reports a body that is not a JSON object.
func NewInvalidJSON() *SubmissionError {
	return badRequest(MsgInvalidJSON)
}

// MessageOf returns the player-facing message carried by err, or fallback.
func MessageOf(err error, fallback string) string {
	var se *SubmissionError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return fallback
}
