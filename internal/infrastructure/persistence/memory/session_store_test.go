package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vittamlabs/origination/internal/domain/model"
	"github.com/vittamlabs/origination/internal/domain/port"
	"github.com/vittamlabs/origination/internal/infrastructure/persistence/memory"
)

func TestSessionStoreSaveAndFind(t *testing.T) {
	store := memory.NewSessionStore()
	ctx := context.Background()
	now := time.Now().UTC()

	sess := model.NewSession("hello", now)
	require.NoError(t, store.Save(ctx, sess))
	assert.Equal(t, 1, store.Len())

	loaded, err := store.FindByID(ctx, sess.ID())
	require.NoError(t, err)
	assert.Equal(t, sess.ID(), loaded.ID())
	assert.True(t, loaded.Stage().Equal(sess.Stage()))
	assert.Empty(t, loaded.DomainEvents(), "events are not persisted")

	// The loaded copy carries the bumped version, so a follow-up save from
	// it passes the optimistic check.
	next, err := loaded.BeginNeedsDiscovery("terms?", now)
	require.NoError(t, err)
	assert.NoError(t, store.Save(ctx, next))
}

func TestSessionStoreVersionConflict(t *testing.T) {
	store := memory.NewSessionStore()
	ctx := context.Background()
	now := time.Now().UTC()

	sess := model.NewSession("hello", now)
	require.NoError(t, store.Save(ctx, sess))

	loaded, err := store.FindByID(ctx, sess.ID())
	require.NoError(t, err)

	// First writer wins; the stale copy loses the race.
	require.NoError(t, store.Save(ctx, loaded))
	err = store.Save(ctx, loaded)
	assert.ErrorIs(t, err, port.ErrVersionConflict)
}

func TestSessionStoreNotFound(t *testing.T) {
	store := memory.NewSessionStore()
	ctx := context.Background()

	_, err := store.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, port.ErrSessionNotFound)

	assert.ErrorIs(t, store.Delete(ctx, "missing"), port.ErrSessionNotFound)
}

func TestSessionStoreDelete(t *testing.T) {
	store := memory.NewSessionStore()
	ctx := context.Background()

	sess := model.NewSession("hello", time.Now().UTC())
	require.NoError(t, store.Save(ctx, sess))
	require.NoError(t, store.Delete(ctx, sess.ID()))

	assert.Equal(t, 0, store.Len())
	_, err := store.FindByID(ctx, sess.ID())
	assert.ErrorIs(t, err, port.ErrSessionNotFound)
}

func TestSanctionStoreWriteOnce(t *testing.T) {
	store := memory.NewSanctionStore()
	ctx := context.Background()

	rec := model.SanctionRecord{
		ID:         "rec-1",
		SessionID:  "sess-1",
		Reference:  "SL/rec-1",
		LoanAmount: decimal.NewFromInt(150000),
		IssuedAt:   time.Now().UTC(),
	}
	require.NoError(t, store.Save(ctx, rec))

	err := store.Save(ctx, rec)
	assert.ErrorIs(t, err, memory.ErrSanctionExists)

	loaded, err := store.FindBySessionID(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "SL/rec-1", loaded.Reference)

	_, err = store.FindBySessionID(ctx, "sess-2")
	assert.ErrorIs(t, err, memory.ErrSanctionNotFound)
}

func TestSeededOfferCatalog(t *testing.T) {
	catalog := memory.NewSeededOfferCatalog()

	offers, err := catalog.ActiveOffers(context.Background())
	require.NoError(t, err)
	require.Len(t, offers, 3)

	for _, o := range offers {
		assert.True(t, o.Active)
		assert.NotEqual(t, "offer-festive-2024", o.ID, "retired offers never surface")
	}
}
