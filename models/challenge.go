package models

import "time"

// VerificationChallenge is a server-issued, time-bounded secret used to prove
// control of an email address during registration.
//
// At most one challenge exists per email: issuing a new one supersedes the
// previous row via an atomic upsert keyed by the email column. Expired rows
// are garbage-collected by the challenge janitor worker.
type VerificationChallenge struct {
	// Email is the address the challenge was issued for. Unique key.
	Email string `json:"email"`

	// Code is the 6-digit numeric one-time code mailed to the user.
	// Zero-padded; drawn uniformly from [0, 999999].
	Code string `json:"-"`

	// IssuedAt is the moment the challenge was created or re-issued.
	IssuedAt time.Time `json:"issued_at"`

	// ExpiresAt bounds the validity of the code.
	ExpiresAt time.Time `json:"expires_at"`

	// Consumed is set once the code has been verified successfully.
	// A consumed challenge can never verify again.
	Consumed bool `json:"-"`
}

// TableName returns the name of the database table
// associated with the VerificationChallenge model.
func (c VerificationChallenge) TableName() string {
	return "verification_challenges"
}

// Active reports whether the challenge can still be verified at the given
// moment: not yet consumed and not past its expiry.
func (c VerificationChallenge) Active(now time.Time) bool {
	return !c.Consumed && now.Before(c.ExpiresAt)
}
