package models

import "time"

// OtpChallenge — one active challenge per email. Re-issuing replaces the
// previous challenge wholesale (attempts reset to 0, fresh code).
type OtpChallenge struct {
	Code     string
	IssuedAt time.Time
	Attempts int
}

// PendingRegistration holds signup details until the email is verified.
// Created together with an OtpChallenge and deleted together with it on
// success, expiry or attempt exhaustion. The password stays raw here; it is
// hashed only when the user row is materialized.
type PendingRegistration struct {
	FullName  string
	Email     string
	Password  string
	CreatedAt time.Time
}
