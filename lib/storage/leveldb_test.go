package storage

import (
	"fmt"
	"io/ioutil"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/votebook/lib/errors"
)

func TestNewConfigFromString(t *testing.T) {
	config, err := NewConfigFromString("memory://")
	require.NoError(t, err)
	require.Equal(t, "memory", config.Scheme)

	config, err = NewConfigFromString("file:///tmp/votebook/db")
	require.NoError(t, err)
	require.Equal(t, "file", config.Scheme)
	require.Equal(t, "/tmp/votebook/db", config.Path)
	require.Equal(t, "file:///tmp/votebook/db", config.String())

	_, err = NewConfigFromString("file://")
	require.Error(t, err)

	_, err = NewConfigFromString("redis://localhost")
	require.Error(t, err)
}

func TestLevelDBBackendInitFileStorage(t *testing.T) {
	path, _ := ioutil.TempDir("", "votebook")
	defer CleanDB(path)

	config, err := NewConfigFromString("file://" + path)
	require.NoError(t, err)

	st := &LevelDBBackend{}
	require.NoError(t, st.Init(config))
	require.NoError(t, st.PutRaw("a", []byte("b")))
	require.NoError(t, st.Close())

	st = &LevelDBBackend{}
	require.NoError(t, st.Init(config))
	defer st.Close()

	b, err := st.GetRaw("a")
	require.NoError(t, err)
	require.Equal(t, []byte("b"), b)
}

func TestLevelDBBackendNewAndSet(t *testing.T) {
	st := MustNewTestMemoryLevelDBBackend()
	defer st.Close()

	input := map[string]int{"a": 1}
	require.NoError(t, st.New("k", input))

	fetched := map[string]int{}
	require.NoError(t, st.Get("k", &fetched))
	require.Equal(t, input, fetched)

	err := st.New("k", input)
	require.Equal(t, errors.StorageRecordAlreadyExists, err)

	input["a"] = 2
	require.NoError(t, st.Set("k", input))
	require.NoError(t, st.Get("k", &fetched))
	require.Equal(t, 2, fetched["a"])

	err = st.Set("unknown", input)
	require.Equal(t, errors.StorageRecordDoesNotExist, err)

	_, err = st.GetRaw("unknown")
	require.Equal(t, errors.StorageRecordDoesNotExist, err)

	exists, err := st.Has("unknown")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestLevelDBBackendTransaction(t *testing.T) {
	st := MustNewTestMemoryLevelDBBackend()
	defer st.Close()

	{ // discarded
		ts, err := st.OpenTransaction()
		require.NoError(t, err)
		require.True(t, ts.IsTransaction())
		require.NoError(t, ts.Sets(Item{Key: "a", Value: []byte("1")}, Item{Key: "b", Value: []byte("2")}))
		require.NoError(t, ts.Discard())

		exists, err := st.Has("a")
		require.NoError(t, err)
		require.False(t, exists)
	}

	{ // committed
		ts, err := st.OpenTransaction()
		require.NoError(t, err)
		require.NoError(t, ts.Sets(Item{Key: "a", Value: []byte("1")}, Item{Key: "b", Value: []byte("2")}))

		_, err = ts.OpenTransaction()
		require.Error(t, err)

		require.NoError(t, ts.Commit())

		b, err := st.GetRaw("b")
		require.NoError(t, err)
		require.Equal(t, []byte("2"), b)
	}

	require.Error(t, st.Commit())
}

func collect(next func() (IterItem, bool), closeFunc func()) (keys []string) {
	defer closeFunc()
	for {
		item, hasNext := next()
		if !hasNext {
			break
		}
		keys = append(keys, string(item.Key))
	}
	return
}

func TestLevelDBBackendGetIterator(t *testing.T) {
	st := MustNewTestMemoryLevelDBBackend()
	defer st.Close()

	for i := 0; i < 5; i++ {
		require.NoError(t, st.PutRaw(fmt.Sprintf("p-%d", i), []byte{byte(i)}))
	}
	require.NoError(t, st.PutRaw("q-0", []byte{0}))

	require.Equal(t, []string{"p-0", "p-1", "p-2", "p-3", "p-4"}, collect(st.GetIterator("p-", nil)))
	require.Equal(
		t,
		[]string{"p-4", "p-3", "p-2", "p-1", "p-0"},
		collect(st.GetIterator("p-", NewDefaultListOptions(true, nil, 0))),
	)
	require.Equal(
		t,
		[]string{"p-0", "p-1"},
		collect(st.GetIterator("p-", NewDefaultListOptions(false, nil, 2))),
	)
	require.Equal(
		t,
		[]string{"p-3", "p-4"},
		collect(st.GetIterator("p-", NewDefaultListOptions(false, []byte("p-2"), 0))),
	)
	require.Equal(
		t,
		[]string{"p-1", "p-0"},
		collect(st.GetIterator("p-", NewDefaultListOptions(true, []byte("p-2"), 0))),
	)
}

func TestDefaultListOptions(t *testing.T) {
	cursor := []byte("oh-all-1")
	o := NewDefaultListOptions(false, cursor, 10)
	cursor[0] = 'x'
	require.Equal(t, []byte("oh-all-1"), o.Cursor())
	require.Equal(t, "cursor=oh-all-1&limit=10&reverse=false", o.URLValues().Encode())

	o.SetReverse(true).SetCursor(nil).SetLimit(0)
	require.True(t, o.Reverse())
	require.Nil(t, o.Cursor())
	require.Equal(t, uint64(0), o.Limit())
	require.Equal(t, "reverse=true", o.URLValues().Encode())
}
