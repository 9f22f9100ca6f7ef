package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vittamlabs/origination/internal/domain/model"
	"github.com/vittamlabs/origination/internal/domain/service"
)

func kycRecord() model.KYCRecord {
	return model.KYCRecord{
		Name:        "Rahul Sharma",
		Phone:       "9876543210",
		Address:     "14 MG Road, Bengaluru",
		DateOfBirth: "1990-04-12",
	}
}

func declaredApp() model.Application {
	return model.Application{
		Name:        "Rahul Sharma",
		Phone:       "9876543210",
		Address:     "14 MG Road, Bengaluru",
		DateOfBirth: "1990-04-12",
	}
}

func TestMatchIdentity(t *testing.T) {
	matcher := service.NewIdentityMatcher()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("exact match freezes the record values", func(t *testing.T) {
		identity, failure := matcher.MatchIdentity(declaredApp(), kycRecord(), now)

		require.Nil(t, failure)
		assert.Equal(t, "Rahul Sharma", identity.Name)
		assert.Equal(t, "9876543210", identity.Phone)
		assert.Equal(t, now, identity.VerifiedAt)
	})

	t.Run("case and whitespace differences still match", func(t *testing.T) {
		app := declaredApp()
		app.Name = "  rahul   SHARMA "
		app.Address = "14 mg road,   Bengaluru"

		// Address comma placement matters, whitespace and case do not.
		rec := kycRecord()
		rec.Address = "14 MG Road, Bengaluru"
		app.Address = "14 MG ROAD,  bengaluru"

		_, failure := matcher.MatchIdentity(app, rec, now)
		assert.Nil(t, failure)
	})

	t.Run("name mismatch reports the field", func(t *testing.T) {
		app := declaredApp()
		app.Name = "Rohit Sharma"

		_, failure := matcher.MatchIdentity(app, kycRecord(), now)

		require.NotNil(t, failure)
		require.Len(t, failure.Mismatches, 1)
		assert.Equal(t, "name", failure.Mismatches[0].Field)
	})

	t.Run("multiple mismatches are all listed", func(t *testing.T) {
		app := declaredApp()
		app.Phone = "9999999999"
		app.DateOfBirth = "1991-04-12"

		_, failure := matcher.MatchIdentity(app, kycRecord(), now)

		require.NotNil(t, failure)
		assert.Len(t, failure.Mismatches, 2)
		assert.Contains(t, failure.Error(), "phone")
		assert.Contains(t, failure.Error(), "date_of_birth")
	})
}
