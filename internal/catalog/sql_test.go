package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *SQLDirectory {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "catalog.db")
	db, err := Open(context.Background(), DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSQLDirectory(db, dsn)
}

func TestSQLDirectory_FetchFiltersAndOrders(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()

	rows := []RawChannel{
		{Root: "r-math", Name: "Math", NumExercises: 30, Available: true},
		{Root: "r-read", Name: "Reading", NumExercises: 0, Available: true},
		{Root: "r-sci", Name: "Science", NumExercises: 9, Available: false},
		{Root: "r-art", Name: "Art", NumExercises: 4, Available: true},
	}
	for _, rc := range rows {
		require.NoError(t, d.UpsertChannel(ctx, rc))
	}

	got, err := d.FetchChannels(ctx, Filter{HasExercises: true, Available: true})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Art", got[0].Name)
	assert.Equal(t, "Math", got[1].Name)

	all, err := d.FetchChannels(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestSQLDirectory_UpsertReplaces(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, d.UpsertChannel(ctx, RawChannel{Root: "r1", Name: "Old", NumExercises: 1, Available: true}))
	require.NoError(t, d.UpsertChannel(ctx, RawChannel{Root: "r1", Name: "New", NumExercises: 8, Available: true}))

	got, err := d.FetchChannels(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "New", got[0].Name)
	assert.Equal(t, 8, got[0].NumExercises)
}
