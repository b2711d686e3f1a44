package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBTreeCacheGetSet does basic sanity checks on our cache.
func TestBTreeCacheGetSet(t *testing.T) {
	// devnull is a black hole, just to keep our types proper
	devnull := BTreeCacheable{EmptyKVStore{}}

	// base is the root of our data, we can layer on top and all
	// queries should work
	base := devnull.CacheWrap()

	k, v := []byte("vault"), []byte("100")
	assertGet(t, base, k, nil)
	base.Set(k, v)
	assertGet(t, base, k, v)

	// now layer another btree on top and make sure that we get base data
	cache := base.CacheWrap()
	assertGet(t, cache, k, v)

	// writing more data is only visible in the cache
	k2, v2 := []byte("record"), []byte("maker")
	require.NoError(t, cache.Set(k2, v2))
	assertGet(t, cache, k2, v2)
	assertGet(t, base, k2, nil)

	// we can write the cache to the base layer
	require.NoError(t, cache.Write())
	assertGet(t, base, k, v)
	assertGet(t, base, k2, v2)

	// we can discard one
	k3, v3 := []byte("taker"), []byte("200")
	c2 := base.CacheWrap()
	require.NoError(t, c2.Set(k3, v3))
	require.NoError(t, c2.Delete(k2))
	assertGet(t, c2, k3, v3)
	assertGet(t, c2, k2, nil)
	c2.Discard()
	assertGet(t, base, k3, nil)
	assertGet(t, base, k2, v2)

	// and a new cache wrap writes deletes down
	c3 := base.CacheWrap()
	require.NoError(t, c3.Delete(k))
	require.NoError(t, c3.Write())
	assertGet(t, base, k, nil)
}

func assertGet(t testing.TB, db ReadOnlyKVStore, key, want []byte) {
	t.Helper()
	got, err := db.Get(key)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	has, err := db.Has(key)
	require.NoError(t, err)
	assert.Equal(t, want != nil, has)
}

func TestBTreeCacheIterator(t *testing.T) {
	base := MemStore()
	for _, k := range []string{"a", "c", "e", "g"} {
		require.NoError(t, base.Set([]byte(k), []byte("base-"+k)))
	}

	cache := base.CacheWrap()
	require.NoError(t, cache.Set([]byte("b"), []byte("cache-b")))
	require.NoError(t, cache.Set([]byte("c"), []byte("cache-c")))
	require.NoError(t, cache.Delete([]byte("e")))
	require.NoError(t, cache.Set([]byte("h"), []byte("cache-h")))

	cases := map[string]struct {
		start, end []byte
		reverse    bool
		want       []string
	}{
		"full range": {
			want: []string{"a=base-a", "b=cache-b", "c=cache-c", "g=base-g", "h=cache-h"},
		},
		"full range reversed": {
			reverse: true,
			want:    []string{"h=cache-h", "g=base-g", "c=cache-c", "b=cache-b", "a=base-a"},
		},
		"bounded range": {
			start: []byte("b"),
			end:   []byte("g"),
			want:  []string{"b=cache-b", "c=cache-c"},
		},
		"bounded range reversed": {
			start:   []byte("b"),
			end:     []byte("h"),
			reverse: true,
			want:    []string{"g=base-g", "c=cache-c", "b=cache-b"},
		},
		"only start": {
			start: []byte("d"),
			want:  []string{"g=base-g", "h=cache-h"},
		},
		"only deleted": {
			start: []byte("e"),
			end:   []byte("f"),
			want:  nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var (
				it  Iterator
				err error
			)
			if tc.reverse {
				it, err = cache.ReverseIterator(tc.start, tc.end)
			} else {
				it, err = cache.Iterator(tc.start, tc.end)
			}
			require.NoError(t, err)
			defer it.Close()

			var got []string
			for ; it.Valid(); require.NoError(t, it.Next()) {
				got = append(got, string(it.Key())+"="+string(it.Value()))
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNonAtomicBatch(t *testing.T) {
	base := MemStore()
	b := NewNonAtomicBatch(base)
	require.NoError(t, b.Set([]byte("a"), []byte("1")))
	require.NoError(t, b.Delete([]byte("b")))
	assert.Len(t, b.ShowOps(), 2)

	// nothing is visible before the write
	assertGet(t, base, []byte("a"), nil)
	require.NoError(t, b.Write())
	assertGet(t, base, []byte("a"), []byte("1"))
	assert.Len(t, b.ShowOps(), 0)
}
