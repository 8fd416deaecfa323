package artifact

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ Store = (*InMemoryStore)(nil)
	_ Store = (*FilesystemStore)(nil)
)

// storeUnderTest builds each backend fresh so the shared conformance tests
// run against both.
func storesUnderTest(t *testing.T) map[string]Store {
	t.Helper()

	fsStore, err := NewFilesystemStore(t.TempDir())
	require.NoError(t, err)

	return map[string]Store{
		"in_memory":  NewInMemoryStore(),
		"filesystem": fsStore,
	}
}

func TestStore_SaveAndGet(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Save("run-1", "report.json", []byte(`{"ok":true}`)))

			data, err := store.Get("run-1", "report.json")
			require.NoError(t, err)
			assert.Equal(t, `{"ok":true}`, string(data))

			_, err = store.Get("run-1", "missing.json")
			assert.ErrorIs(t, err, ErrNotFound)

			_, err = store.Get("missing-run", "report.json")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStore_ListSortedAndScoped(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Save("run-1", "b.json", []byte("b")))
			require.NoError(t, store.Save("run-1", "a.json", []byte("a")))
			require.NoError(t, store.Save("run-2", "c.json", []byte("c")))

			names, err := store.List("run-1")
			require.NoError(t, err)
			assert.Equal(t, []string{"a.json", "b.json"}, names)

			empty, err := store.List("run-3")
			require.NoError(t, err)
			assert.Empty(t, empty)
		})
	}
}

func TestStore_Delete(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Save("run-1", "a.json", []byte("a")))

			require.NoError(t, store.Delete("run-1", "a.json"))
			assert.ErrorIs(t, store.Delete("run-1", "a.json"), ErrNotFound)

			_, err := store.Get("run-1", "a.json")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStore_RejectsPathEscapes(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, store.Save("../run", "a.json", []byte("a")), ErrInvalidName)
			assert.ErrorIs(t, store.Save("run-1", "../a.json", []byte("a")), ErrInvalidName)
			assert.ErrorIs(t, store.Save("run-1", "", []byte("a")), ErrInvalidName)
			assert.ErrorIs(t, store.Save("run-1", `sub\a.json`, []byte("a")), ErrInvalidName)
		})
	}
}

func TestInMemoryStore_CopiesOnSaveAndGet(t *testing.T) {
	store := NewInMemoryStore()

	data := []byte("hello")
	require.NoError(t, store.Save("run-1", "a.txt", data))

	data[0] = 'H'

	out, err := store.Get("run-1", "a.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(out))

	out[0] = 'x'

	out2, err := store.Get("run-1", "a.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(out2))
}

func TestInMemoryStore_ConcurrentSaves(t *testing.T) {
	store := NewInMemoryStore()

	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			name := fmt.Sprintf("a%d.json", i%10)
			assert.NoError(t, store.Save("run-1", name, []byte("data")))

			_, _ = store.List("run-1")
		}(i)
	}

	wg.Wait()

	names, err := store.List("run-1")
	require.NoError(t, err)
	assert.Len(t, names, 10)
}

func TestFilesystemStore_RequiresRoot(t *testing.T) {
	_, err := NewFilesystemStore("")
	assert.Error(t, err)
}
