package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-wellness-hub/internal/core/domain"
)

// runStoreContract exercises the behaviour every DocumentStore must share.
func runStoreContract(t *testing.T, store domain.DocumentStore) {
	ctx := context.Background()

	t.Run("Missing document", func(t *testing.T) {
		_, err := store.Get(ctx, uuid.NewString(), domain.KeyFitnessLog)
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
	})

	t.Run("Put then Get", func(t *testing.T) {
		owner := uuid.NewString()
		require.NoError(t, store.Put(ctx, owner, domain.KeyNutritionMeals, []byte(`[{"name":"Oats"}]`)))

		data, err := store.Get(ctx, owner, domain.KeyNutritionMeals)
		require.NoError(t, err)
		assert.JSONEq(t, `[{"name":"Oats"}]`, string(data))
	})

	t.Run("Put replaces", func(t *testing.T) {
		owner := uuid.NewString()
		require.NoError(t, store.Put(ctx, owner, domain.KeyFitnessGoals, []byte(`{"steps":1}`)))
		require.NoError(t, store.Put(ctx, owner, domain.KeyFitnessGoals, []byte(`{"steps":2}`)))

		data, err := store.Get(ctx, owner, domain.KeyFitnessGoals)
		require.NoError(t, err)
		assert.JSONEq(t, `{"steps":2}`, string(data))
	})

	t.Run("Owners are isolated", func(t *testing.T) {
		a, b := uuid.NewString(), uuid.NewString()
		require.NoError(t, store.Put(ctx, a, domain.KeyWellnessLogs, []byte(`[1]`)))

		_, err := store.Get(ctx, b, domain.KeyWellnessLogs)
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		owner := uuid.NewString()
		require.NoError(t, store.Put(ctx, owner, domain.KeyFitnessStreak, []byte(`{}`)))
		require.NoError(t, store.Delete(ctx, owner, domain.KeyFitnessStreak))

		_, err := store.Get(ctx, owner, domain.KeyFitnessStreak)
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound)

		assert.NoError(t, store.Delete(ctx, owner, domain.KeyFitnessStreak), "deleting twice is not an error")
	})
}
