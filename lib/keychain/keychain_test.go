package keychain

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func setup(t testing.TB) Keychain {
	db, err := Config{File: filepath.Join(t.TempDir(), "state", "keychain.db")}.OpenDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	k, err := Open(db)
	require.NoError(t, err)
	return k
}

func TestKeychain(t *testing.T) {
	ctx := context.Background()
	k := setup(t)

	_, err := k.Get(ctx, "default")
	require.ErrorIs(t, err, ErrNotFound)

	savedAt := time.Date(2024, time.May, 3, 10, 0, 0, 0, time.UTC)
	work := Entry{Profile: "work", Username: "599000001", Token: "token-1", SavedAt: savedAt}
	home := Entry{Profile: "default", Username: "599000002", Token: "token-2", SavedAt: savedAt}
	require.NoError(t, k.Save(ctx, work))
	require.NoError(t, k.Save(ctx, home))

	got, err := k.Get(ctx, "work")
	require.NoError(t, err)
	if diff := cmp.Diff(work, got); diff != "" {
		t.Fatal("unexpected entry", diff)
	}

	entries, err := k.List(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff([]Entry{home, work}, entries); diff != "" {
		t.Fatal("unexpected entries", diff)
	}

	work.Token = "token-3"
	require.NoError(t, k.Save(ctx, work))
	got, err = k.Get(ctx, "work")
	require.NoError(t, err)
	require.Equal(t, "token-3", got.Token)

	require.NoError(t, k.Delete(ctx, "work"))
	require.NoError(t, k.Delete(ctx, "work"))
	_, err = k.Get(ctx, "work")
	require.ErrorIs(t, err, ErrNotFound)

	entries, err = k.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestSaveDefaultsSavedAt(t *testing.T) {
	ctx := context.Background()
	k := setup(t)

	before := time.Now().Add(-time.Second)
	require.NoError(t, k.Save(ctx, Entry{Profile: "default", Token: "t"}))

	got, err := k.Get(ctx, "default")
	require.NoError(t, err)
	require.True(t, got.SavedAt.After(before))
}

func TestSaveRejectsEmptyProfile(t *testing.T) {
	k := setup(t)
	require.Error(t, k.Save(context.Background(), Entry{Token: "t"}))
}

func TestReopenKeepsEntries(t *testing.T) {
	ctx := context.Background()
	config := Config{File: filepath.Join(t.TempDir(), "keychain.db")}

	db, err := config.OpenDB()
	require.NoError(t, err)
	k, err := Open(db)
	require.NoError(t, err)
	require.NoError(t, k.Save(ctx, Entry{Profile: "default", Token: "t"}))
	require.NoError(t, db.Close())

	db, err = config.OpenDB()
	require.NoError(t, err)
	defer db.Close()
	k, err = Open(db)
	require.NoError(t, err)

	got, err := k.Get(ctx, "default")
	require.NoError(t, err)
	require.Equal(t, "t", got.Token)
}

func TestOpenDBRequiresPath(t *testing.T) {
	_, err := Config{}.OpenDB()
	require.Error(t, err)
}
