package service

import (
	"strings"
	"time"

	"github.com/vittamlabs/origination/internal/domain/model"
	"github.com/vittamlabs/origination/internal/domain/valueobject"
)

// IdentityMatcher compares a customer's declared identity against the KYC
// record of reference. Pure comparison; fetching the record is the caller's
// concern.
type IdentityMatcher struct{}

func NewIdentityMatcher() *IdentityMatcher {
	return &IdentityMatcher{}
}

// MatchIdentity returns a verified snapshot when every declared field matches
// the KYC record, or a VerificationFailure listing each mismatched field.
// Name and address compare case-insensitively with whitespace collapsed;
// phone and date of birth compare exactly after trimming.
func (m *IdentityMatcher) MatchIdentity(app model.Application, rec model.KYCRecord, now time.Time) (model.VerifiedIdentity, *valueobject.VerificationFailure) {
	var mismatches []valueobject.FieldMismatch

	if normalize(app.Name) != normalize(rec.Name) {
		mismatches = append(mismatches, valueobject.FieldMismatch{Field: "name", Reason: "does not match record"})
	}
	if strings.TrimSpace(app.Phone) != strings.TrimSpace(rec.Phone) {
		mismatches = append(mismatches, valueobject.FieldMismatch{Field: "phone", Reason: "does not match record"})
	}
	if normalize(app.Address) != normalize(rec.Address) {
		mismatches = append(mismatches, valueobject.FieldMismatch{Field: "address", Reason: "does not match record"})
	}
	if strings.TrimSpace(app.DateOfBirth) != strings.TrimSpace(rec.DateOfBirth) {
		mismatches = append(mismatches, valueobject.FieldMismatch{Field: "date_of_birth", Reason: "does not match record"})
	}

	if len(mismatches) > 0 {
		return model.VerifiedIdentity{}, &valueobject.VerificationFailure{Mismatches: mismatches}
	}

	return model.VerifiedIdentity{
		Name:        rec.Name,
		Phone:       rec.Phone,
		Address:     rec.Address,
		DateOfBirth: rec.DateOfBirth,
		VerifiedAt:  now,
	}, nil
}

// normalize lowercases and collapses internal whitespace so formatting
// differences do not fail a match.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
