package common

import (
	"io/ioutil"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetENVValue(t *testing.T) {
	os.Setenv("VOTEBOOK_TEST_ENV", "findme")
	defer os.Unsetenv("VOTEBOOK_TEST_ENV")

	require.Equal(t, "findme", GetENVValue("VOTEBOOK_TEST_ENV", "default"))
	require.Equal(t, "default", GetENVValue("VOTEBOOK_TEST_ENV_MISSING", "default"))
}

func TestGetUrlQuery(t *testing.T) {
	q := url.Values{}
	require.Equal(t, "default", GetUrlQuery(q, "type", "default"))

	q.Set("type", "cast-vote")
	require.Equal(t, "cast-vote", GetUrlQuery(q, "type", "default"))
}

func TestJSONMarshalIndent(t *testing.T) {
	b, err := JSONMarshalIndent(map[string]int{"a": 1})
	require.NoError(t, err)
	require.Equal(t, "{\n  \"a\": 1\n}", string(b))
}

func TestInStringArray(t *testing.T) {
	index, found := InStringArray([]string{"a", "b"}, "b")
	require.True(t, found)
	require.Equal(t, 1, index)

	index, found = InStringArray([]string{"a", "b"}, "c")
	require.False(t, found)
	require.Equal(t, -1, index)
}

func TestGetUniqueIDFromUUID(t *testing.T) {
	a := GetUniqueIDFromUUID()
	b := GetUniqueIDFromUUID()
	require.NotEqual(t, a, b)
	require.Equal(t, 36, len(a))
}

func TestIsEmpty(t *testing.T) {
	dir, err := ioutil.TempDir("", "votebook-util")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	require.True(t, IsExists(dir))
	empty, err := IsEmpty(dir)
	require.NoError(t, err)
	require.True(t, empty)

	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "a"), []byte("a"), 0600))
	empty, err = IsEmpty(dir)
	require.NoError(t, err)
	require.False(t, empty)
}
