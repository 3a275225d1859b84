package model

import (
	"errors"
	"time"
)

// PendingRegistration is a not-yet-verified signup awaiting one-time-code
// confirmation. Verification promotes it into a User and deletes the row;
// a resend overwrites code and expiry in place on the same row.
type PendingRegistration struct {
	ID            int64     `db:"id" json:"id"`
	Name          string    `db:"name" json:"-"`
	Email         string    `db:"email" json:"-"`
	PasswordHash  string    `db:"password_hash" json:"-"`
	Code          string    `db:"code" json:"-"`
	CodeExpiresAt time.Time `db:"code_expires_at" json:"-"`
	CreatedAt     time.Time `db:"created_at" json:"-"`
}

// Expired reports whether the current code is past its expiry.
func (p *PendingRegistration) Expired(now time.Time) bool {
	return now.After(p.CodeExpiresAt)
}

// SendOTPRequest is the body for the onboarding flow's first step.
type SendOTPRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SendOTPResponse returns the pending id as a correlation handle for the
// verify and resend steps. It is not a secret and grants nothing.
type SendOTPResponse struct {
	PendingID int64 `json:"pending_id"`
}

// VerifyOTPRequest submits the code for a pending registration.
type VerifyOTPRequest struct {
	PendingID int64  `json:"pending_id"`
	Code      string `json:"code"`
}

// ResendOTPRequest asks for a fresh code on an existing pending row.
type ResendOTPRequest struct {
	PendingID int64 `json:"pending_id"`
}

// OTPCodeTTL is how long a one-time code stays valid.
const OTPCodeTTL = 10 * time.Minute

// OTPCodeLength is the number of digits in a one-time code.
const OTPCodeLength = 6

var (
	// ErrRegistrationNotFound is returned when the pending id references
	// nothing, including a registration already consumed by verification.
	ErrRegistrationNotFound = errors.New("pending registration not found")

	// ErrCodeExpired is returned when the code is submitted past expiry.
	ErrCodeExpired = errors.New("verification code expired")

	// ErrInvalidCode is returned when the submitted code does not match.
	ErrInvalidCode = errors.New("invalid verification code")
)
