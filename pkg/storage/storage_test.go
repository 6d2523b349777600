package storage_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mydatashare/mdscore/pkg/storage"
)

func TestMemory(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	m := storage.NewMemory()

	_, err := m.Get(ctx, "nonce")
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, m.Set(ctx, "nonce", "abc"))
	v, err := m.Get(ctx, "nonce")
	require.NoError(t, err)
	assert.Equal(t, "abc", v)

	require.NoError(t, m.Set(ctx, "nonce", "def"))
	v, err = m.Get(ctx, "nonce")
	require.NoError(t, err)
	assert.Equal(t, "def", v)

	require.NoError(t, m.Remove(ctx, "nonce"))
	require.NoError(t, m.Remove(ctx, "nonce"))
	_, err = m.Get(ctx, "nonce")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.ErrorIs(t, m.Set(ctx, "", "x"), storage.ErrEmptyKey)
}

func TestMemory_Concurrent(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	m := storage.NewMemory()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := string(rune('a' + i%26))
			_ = m.Set(ctx, key, "v")
			_, _ = m.Get(ctx, key)
		}()
	}
	wg.Wait()

	assert.Len(t, m.Snapshot(), 26)
}

func TestWithPrefix(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	mem := storage.NewMemory()
	st := storage.WithPrefix(mem, "")

	require.NoError(t, st.Set(ctx, "nonce", "abc"))
	assert.Equal(t, map[string]string{"mds-core-nonce": "abc"}, mem.Snapshot())

	v, err := st.Get(ctx, "nonce")
	require.NoError(t, err)
	assert.Equal(t, "abc", v)

	other := storage.WithPrefix(mem, storage.Prefix(storage.DefaultPrefix, "other.example.com"))
	_, err = other.Get(ctx, "nonce")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, st.Remove(ctx, "nonce"))
	assert.Empty(t, mem.Snapshot())
}

func TestPrefix(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "mds-core-", storage.Prefix("", ""))
	assert.Equal(t, "mds-core-app.example.com-", storage.Prefix("", "app.example.com"))
	assert.Equal(t, "x-", storage.Prefix("x-", ""))
}
