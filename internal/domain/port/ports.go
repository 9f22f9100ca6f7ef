// Package port declares the outbound interfaces the application layer depends
// on. Infrastructure provides the implementations.
package port

import (
	"context"
	"errors"

	"github.com/vittamlabs/origination/internal/domain/model"
	"github.com/vittamlabs/origination/pkg/events"
)

var (
	// ErrSessionNotFound is returned when no session exists for the given ID.
	ErrSessionNotFound = errors.New("session not found")

	// ErrVersionConflict is returned when a save lost an optimistic-locking
	// race against a concurrent writer.
	ErrVersionConflict = errors.New("session version conflict")

	// ErrKYCNotFound is returned when the KYC directory has no record for the
	// given phone number.
	ErrKYCNotFound = errors.New("kyc record not found")

	// ErrProfileNotFound is returned when the credit bureau has no profile for
	// the given phone number.
	ErrProfileNotFound = errors.New("credit profile not found")
)

// SessionRepository persists session aggregates. Save enforces optimistic
// locking on the aggregate version.
type SessionRepository interface {
	Save(ctx context.Context, s model.Session) error
	FindByID(ctx context.Context, id string) (model.Session, error)
	Delete(ctx context.Context, id string) error
}

// SanctionRecordRepository persists issued sanction records. Records are
// immutable once stored.
type SanctionRecordRepository interface {
	Save(ctx context.Context, rec model.SanctionRecord) error
	FindBySessionID(ctx context.Context, sessionID string) (model.SanctionRecord, error)
}

// OfferCatalog lists the loan offers eligible for underwriting.
type OfferCatalog interface {
	ActiveOffers(ctx context.Context) ([]model.Offer, error)
}

// KYCClient resolves the identity record of reference for a phone number.
type KYCClient interface {
	Lookup(ctx context.Context, phone string) (model.KYCRecord, error)
}

// CreditBureauClient fetches the credit profile for a verified customer.
type CreditBureauClient interface {
	FetchProfile(ctx context.Context, phone string) (model.CreditProfile, error)
}

// EventPublisher emits domain events to the message bus. Implementations own
// topic routing.
type EventPublisher interface {
	Publish(ctx context.Context, evts ...events.DomainEvent) error
}
