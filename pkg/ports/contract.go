package ports

import (
	"context"
	"testing"
	"time"

	"github.com/Akhilesh30Jadhav/Shushrusha/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSessionStoreContract runs a suite of tests to verify that a
// SessionStore implementation adheres to the interface contract.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	sessionID := "contract-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		session := domain.NewSession(sessionID, "anc-visit", "en", "device-1")
		session.Turns = append(session.Turns, domain.Turn{
			Index:          1,
			NodeKey:        "start",
			UserText:       "do you have a fever",
			MatchedItems:   []string{"Ask about fever"},
			MissedItems:    []string{"Ask danger signs"},
			CriticalMissed: []string{"Ask danger signs"},
		})

		err := store.Save(ctx, session)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, session.ID, loaded.ID)
		assert.Equal(t, session.ScenarioID, loaded.ScenarioID)
		assert.Equal(t, session.Language, loaded.Language)
		require.Len(t, loaded.Turns, 1)
		assert.Equal(t, []string{"Ask about fever"}, loaded.Turns[0].MatchedItems)
		assert.False(t, loaded.Completed())
	})

	t.Run("Load returns a copy", func(t *testing.T) {
		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		loaded.Turns = append(loaded.Turns, domain.Turn{Index: 99, NodeKey: "mutated"})

		again, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Len(t, again.Turns, 1, "mutating a loaded session must not leak into the store")
	})

	t.Run("Completion roundtrip", func(t *testing.T) {
		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)

		now := time.Now().UTC().Truncate(time.Second)
		score := 62.5
		loaded.CompletedAt = &now
		loaded.Score = &score
		loaded.Report = &domain.SessionReport{
			Score:            score,
			ChecklistResults: []domain.ChecklistResult{{Item: "Ask about fever", Status: domain.StatusDone}},
			CriticalMisses:   []string{"Ask danger signs"},
			Suggestions:      []string{"tip"},
		}
		require.NoError(t, store.Save(ctx, loaded))

		final, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.True(t, final.Completed())
		require.NotNil(t, final.Score)
		assert.Equal(t, score, *final.Score)
		require.NotNil(t, final.Report)
		assert.Equal(t, []string{"Ask danger signs"}, final.Report.CriticalMisses)
	})

	t.Run("Load non-existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, domain.NewSession(sessionID, "anc-visit", "en", "")))

		require.NoError(t, store.Delete(ctx, sessionID))

		_, err := store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, domain.NewSession(id1, "anc-visit", "en", ""))
		_ = store.Save(ctx, domain.NewSession(id2, "anc-visit", "hi", ""))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})

	t.Run("Recent ordering and filtering", func(t *testing.T) {
		older := domain.NewSession(sessionID+"-old", "anc-visit", "en", "device-a")
		older.StartedAt = time.Now().UTC().Add(-2 * time.Hour)
		newer := domain.NewSession(sessionID+"-new", "anc-visit", "en", "device-a")
		newer.StartedAt = time.Now().UTC().Add(-1 * time.Hour)
		other := domain.NewSession(sessionID+"-other", "anc-visit", "en", "device-b")
		other.StartedAt = time.Now().UTC()

		require.NoError(t, store.Save(ctx, older))
		require.NoError(t, store.Save(ctx, newer))
		require.NoError(t, store.Save(ctx, other))
		defer func() {
			_ = store.Delete(ctx, older.ID)
			_ = store.Delete(ctx, newer.ID)
			_ = store.Delete(ctx, other.ID)
		}()

		all, err := store.Recent(ctx, "", 10)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(all), 3)
		for i := 1; i < len(all); i++ {
			assert.False(t, all[i].StartedAt.After(all[i-1].StartedAt), "sessions must be newest first")
		}

		filtered, err := store.Recent(ctx, "device-a", 10)
		require.NoError(t, err)
		require.Len(t, filtered, 2)
		assert.Equal(t, newer.ID, filtered[0].ID)
		assert.Equal(t, older.ID, filtered[1].ID)

		limited, err := store.Recent(ctx, "device-a", 1)
		require.NoError(t, err)
		require.Len(t, limited, 1)
		assert.Equal(t, newer.ID, limited[0].ID)
	})
}
