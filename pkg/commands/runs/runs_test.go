package runs

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/relink/pkg/errors"
	"github.com/arthur-debert/relink/pkg/history"
	"github.com/arthur-debert/relink/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := history.Open(path)
	require.NoError(t, err)

	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < DefaultLimit+2; i++ {
		result := &types.RunResult{
			ID:        fmt.Sprintf("run-%02d", i),
			Document:  "Tower_Central",
			StartedAt: start.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, store.Record(result, ""))
	}
	require.NoError(t, store.Close())

	runs, err := List(ListOptions{HistoryPath: path})
	require.NoError(t, err)
	require.Len(t, runs, DefaultLimit)
	assert.Equal(t, "run-11", runs[0].ID)

	runs, err = List(ListOptions{HistoryPath: path, Limit: 3})
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "run-09", runs[2].ID)
}

func TestList_EmptyHistory(t *testing.T) {
	runs, err := List(ListOptions{HistoryPath: filepath.Join(t.TempDir(), "new", "history.db")})
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := history.Open(path)
	require.NoError(t, err)
	result := &types.RunResult{
		ID:        "run-1",
		Document:  "Tower_Central",
		StartedAt: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		Entries: []types.LinkEntry{
			{Name: "Site-RVT-3-Linked.rvt", CurrentRevision: 3, NewRevision: 5, Outcome: types.OutcomeUpdated},
			{Name: "Annex.rvt", Outcome: types.OutcomeDocNotFound},
		},
	}
	require.NoError(t, store.Record(result, ""))
	require.NoError(t, store.Close())

	detail, err := Show(ShowOptions{HistoryPath: path, ID: "run-1"})
	require.NoError(t, err)
	assert.Equal(t, "Tower_Central", detail.Run.Document)
	require.Len(t, detail.Entries, 2)
	assert.Equal(t, "Site-RVT-3-Linked.rvt", detail.Entries[0].Name)
	assert.Equal(t, types.OutcomeDocNotFound, detail.Entries[1].Outcome)

	_, err = Show(ShowOptions{HistoryPath: path, ID: "run-2"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}
