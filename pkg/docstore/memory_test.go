package docstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	collection := Path("publications", "journals", "items")

	first, err := store.Create(ctx, collection, map[string]interface{}{"heading": "A"})
	require.NoError(t, err)
	second, err := store.Create(ctx, collection, map[string]interface{}{"heading": "B"})
	require.NoError(t, err)

	docs, err := store.List(ctx, collection)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, first, docs[0].ID)
	assert.Equal(t, second, docs[1].ID)

	require.NoError(t, store.Update(ctx, collection, first, map[string]interface{}{"link": "https://x"}))
	doc, err := store.Get(ctx, collection, first)
	require.NoError(t, err)
	assert.Equal(t, "A", doc.Data["heading"])
	assert.Equal(t, "https://x", doc.Data["link"])

	require.NoError(t, store.Delete(ctx, collection, first))
	_, err = store.Get(ctx, collection, first)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, collection, first), ErrNotFound)
	assert.ErrorIs(t, store.Update(ctx, collection, first, map[string]interface{}{"heading": "x"}), ErrNotFound)
}

func TestMemoryStoreIsolatesCallerData(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	tags := []interface{}{"a"}
	require.NoError(t, store.Set(ctx, "research", "interests", map[string]interface{}{"tags": tags}))
	tags[0] = "mutated"

	doc, err := store.Get(ctx, "research", "interests")
	require.NoError(t, err)
	doc.Data["tags"].([]interface{})[0] = "changed"

	again, err := store.Get(ctx, "research", "interests")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"a"}, again.Data["tags"])
}

func TestMemoryStoreSetKeepsListPosition(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, "c", "one", map[string]interface{}{}))
	require.NoError(t, store.Set(ctx, "c", "two", map[string]interface{}{}))
	require.NoError(t, store.Set(ctx, "c", "one", map[string]interface{}{"v": true}))

	docs, err := store.List(ctx, "c")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "one", docs[0].ID)
	assert.Equal(t, true, docs[0].Data["v"])
}

func TestMemoryStoreListUnknownCollection(t *testing.T) {
	docs, err := NewMemoryStore().List(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, docs)
	assert.NotNil(t, docs)
}
