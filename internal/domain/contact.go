package domain

import (
	"context"
	"time"
)

// SubmissionInput carries the contact form fields for one request. Values
// are sanitized at intake; nothing downstream ever sees raw input.
type SubmissionInput struct {
	FullName    string `json:"fullName" validate:"required"`
	Email       string `json:"email" validate:"required,email_shape"`
	Phone       string `json:"phone" validate:"required"`
	EnquiryType string `json:"enquiryType" validate:"required"`
	Message     string `json:"message" validate:"required"`
	BotField    string `json:"botField"`
}

// ContactFormRecord is the durable row written for a successful
// submission. Rows are append-only; this system never updates or deletes
// them.
type ContactFormRecord struct {
	ID          int64
	FullName    string
	Email       string
	Phone       string
	EnquiryType string
	Message     string
	SubmittedAt time.Time
}

// ValidationErrors maps a wire field name to a human-readable message.
// An empty map means the input is valid.
type ValidationErrors map[string]string

// Envelope is one rendered notification email. BCC recipients receive
// the message without appearing in its headers.
type Envelope struct {
	To       string
	ToName   string
	BCC      string
	ReplyTo  string
	Subject  string
	HTMLBody string
}

type SubmitStatus int

const (
	SubmitAccepted SubmitStatus = iota
	SubmitSpamRejected
	SubmitInvalid
	SubmitStoreFailed
	SubmitNotifyFailed
)

// SubmitResult is the terminal state of one submission. SubmitNotifyFailed
// means the record was stored but a notification did not go out; the row
// is kept and reconciled out-of-band rather than retried.
type SubmitResult struct {
	Status      SubmitStatus
	FieldErrors ValidationErrors
	Err         error
}

// ContactUsecase drives a sanitized submission through the honeypot
// check, validation, persistence and notification.
type ContactUsecase interface {
	Submit(ctx context.Context, sessionID string, in SubmissionInput) SubmitResult
}

// ContactRepository appends contact form records. The submission
// timestamp is generated by the store at write time.
type ContactRepository interface {
	Create(ctx context.Context, rec *ContactFormRecord) error
}

// Mailer delivers one rendered notification.
type Mailer interface {
	Send(ctx context.Context, env Envelope) error
}

// SessionStore is the per-session key-value state shared by the throttle
// middleware and the usecase. Get reports absence via the bool.
type SessionStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}
