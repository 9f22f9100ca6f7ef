package model

import "time"

// KYCRecord is what the external identity directory returns for a phone
// number lookup.
type KYCRecord struct {
	Name        string
	Phone       string
	Address     string
	DateOfBirth string
}

// VerifiedIdentity is the identity snapshot frozen into a session once the
// declared application fields matched the KYC record.
type VerifiedIdentity struct {
	Name        string
	Phone       string
	Address     string
	DateOfBirth string
	VerifiedAt  time.Time
}
