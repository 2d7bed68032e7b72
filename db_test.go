package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := openAndInitDB(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestJournal_InsertAndList(t *testing.T) {
	db := openTestDB(t)

	for i, name := range []string{"a.jpg", "b.jpg", "c.jpg"} {
		batch := "batch-1"
		if i == 2 {
			batch = "batch-2"
		}
		_, err := db.insertRename(RenameRecord{BatchID: batch, Source: name, Target: "new-" + name, Pattern: "new-{f}"})
		require.NoError(t, err)
	}

	rows, err := db.listRenameRows(0, 50)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "a.jpg", rows[0].Source)
	assert.Equal(t, "new-a.jpg", rows[0].Target)
	assert.Equal(t, "new-{f}", rows[0].Pattern)
	assert.NotEmpty(t, rows[0].RenamedAt)
	assert.False(t, rows[0].Undone)

	page, err := db.listRenameRows(1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "b.jpg", page[0].Source)

	batch, err := db.listBatchRows("batch-1")
	require.NoError(t, err)
	assert.Len(t, batch, 2)

	none, err := db.listBatchRows("missing")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestJournal_MarkUndoneAndClear(t *testing.T) {
	db := openTestDB(t)
	id, err := db.insertRename(RenameRecord{BatchID: "b", Source: "a", Target: "b", Pattern: "{f}"})
	require.NoError(t, err)

	require.NoError(t, db.markUndone(id))
	rows, err := db.listBatchRows("b")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Undone)

	require.NoError(t, db.clearDBTables())
	rows, err = db.listRenameRows(0, 50)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
