package registration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet_registry/internal/validation"
)

func TestBeginAndMerge(t *testing.T) {
	store := NewStore(time.Hour)
	d := store.Begin()
	require.NotEmpty(t, d.Token)

	merged, err := store.Merge(d.Token, func(data *validation.ApplicantInput) {
		data.FullName = "Abel Tesfaye"
		data.PrimaryPhoneNumber = "+251911223344"
	})
	require.NoError(t, err)
	assert.Equal(t, "Abel Tesfaye", merged.Data.FullName)

	// A second merge keeps earlier fields.
	merged, err = store.Merge(d.Token, func(data *validation.ApplicantInput) {
		data.PreferredVehicleType = "Minibus"
	})
	require.NoError(t, err)
	assert.Equal(t, "Abel Tesfaye", merged.Data.FullName)
	assert.Equal(t, "Minibus", merged.Data.PreferredVehicleType)
}

func TestStepOneComplete(t *testing.T) {
	d := &Draft{}
	assert.False(t, d.StepOneComplete())

	d.Data.FullName = "Abel Tesfaye"
	assert.False(t, d.StepOneComplete(), "a contact channel is still missing")

	d.Data.PrimaryPhoneNumber = "+251911223344"
	assert.True(t, d.StepOneComplete())

	// Email alone also satisfies the contact requirement.
	d.Data.PrimaryPhoneNumber = ""
	d.Data.EmailAddress = "abel@example.com"
	assert.True(t, d.StepOneComplete())
}

func TestUnknownTokenIsNotFound(t *testing.T) {
	store := NewStore(time.Hour)
	_, err := store.Get("no-such-token")
	assert.ErrorIs(t, err, ErrDraftNotFound)

	_, err = store.Merge("no-such-token", func(*validation.ApplicantInput) {})
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestDiscardRemovesDraft(t *testing.T) {
	store := NewStore(time.Hour)
	d := store.Begin()
	store.Discard(d.Token)

	_, err := store.Get(d.Token)
	assert.ErrorIs(t, err, ErrDraftNotFound)
	assert.Equal(t, 0, store.Len())
}

func TestSweepDropsExpiredDrafts(t *testing.T) {
	store := NewStore(30 * time.Minute)
	stale := store.Begin()
	fresh := store.Begin()

	store.mu.Lock()
	store.drafts[stale.Token].UpdatedAt = time.Now().Add(-time.Hour)
	store.mu.Unlock()

	removed := store.Sweep(time.Now())
	assert.Equal(t, 1, removed)

	_, err := store.Get(stale.Token)
	assert.ErrorIs(t, err, ErrDraftNotFound)
	_, err = store.Get(fresh.Token)
	assert.NoError(t, err)
}
