package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	st, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestPushGeneratesUniqueKeysInOrder(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		key, err := st.Push(ctx, "packages/GP", map[string]interface{}{"name": string(rune('A' + i))})
		require.NoError(t, err)
		require.NotEmpty(t, key)
		require.False(t, seen[key], "push key reused: %s", key)
		seen[key] = true
	}

	entries, err := st.GetSubtree(ctx, "packages/GP")
	require.NoError(t, err)
	require.Len(t, entries, 5)
	for i, e := range entries {
		var v map[string]string
		require.NoError(t, json.Unmarshal(e.Value, &v))
		assert.Equal(t, string(rune('A'+i)), v["name"], "insertion order not preserved")
	}
}

func TestGetSubtreeEmpty(t *testing.T) {
	st := newTestStore(t)

	entries, err := st.GetSubtree(context.Background(), "packages/Nowhere")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSetReplacesWholeValue(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Set(ctx, "paymentMethods/bKash",
		map[string]interface{}{"number": "017", "stale": "yes"}))
	require.NoError(t, st.Set(ctx, "paymentMethods/bKash",
		map[string]interface{}{"number": "018"}))

	entries, err := st.GetSubtree(ctx, "paymentMethods")
	require.NoError(t, err)
	require.Len(t, entries, 1)

	var v map[string]string
	require.NoError(t, json.Unmarshal(entries[0].Value, &v))
	assert.Equal(t, "018", v["number"])
	assert.NotContains(t, v, "stale", "set must not merge")
}

func TestUpdateMergesOneLevel(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Set(ctx, "topupRequests/order1",
		map[string]interface{}{"username": "rafi", "status": "pending"}))
	require.NoError(t, st.Update(ctx, "topupRequests/order1",
		map[string]interface{}{"status": "Completed"}))

	entries, err := st.GetSubtree(ctx, "topupRequests")
	require.NoError(t, err)
	require.Len(t, entries, 1)

	var v map[string]string
	require.NoError(t, json.Unmarshal(entries[0].Value, &v))
	assert.Equal(t, "Completed", v["status"])
	assert.Equal(t, "rafi", v["username"], "unnamed field must survive a merge")
}

func TestUpdateCreatesMissingNode(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Update(ctx, "topupRequests/ghost",
		map[string]interface{}{"status": "Failed"}))

	entries, err := st.GetSubtree(ctx, "topupRequests")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ghost", entries[0].Key)
}

func TestDeleteLeavesSiblings(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	k1, err := st.Push(ctx, "packages/GP", map[string]interface{}{"name": "A"})
	require.NoError(t, err)
	k2, err := st.Push(ctx, "packages/GP", map[string]interface{}{"name": "B"})
	require.NoError(t, err)

	require.NoError(t, st.Delete(ctx, "packages/GP/"+k1))

	entries, err := st.GetSubtree(ctx, "packages/GP")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, k2, entries[0].Key)
}

func TestSplitPath(t *testing.T) {
	parent, key := splitPath("packages/GP/abc")
	assert.Equal(t, "packages/GP", parent)
	assert.Equal(t, "abc", key)

	parent, key = splitPath("users")
	assert.Equal(t, "", parent)
	assert.Equal(t, "users", key)
}
