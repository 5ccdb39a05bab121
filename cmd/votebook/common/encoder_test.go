package common

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

type encoded struct {
	PollID uint64 `json:"poll_id"`
	Title  string `json:"title"`
}

func TestDefaultEncodes(t *testing.T) {
	v := encoded{PollID: 3, Title: "first poll"}

	var b bytes.Buffer
	require.NoError(t, DefaultEncodes["json"](v, &b))
	require.Equal(t, `{"poll_id":3,"title":"first poll"}`+"\n", b.String())

	b.Reset()
	require.NoError(t, DefaultEncodes["prettyjson"](v, &b))
	require.Contains(t, b.String(), "\n  \"poll_id\": 3,\n")

	b.Reset()
	require.NoError(t, DefaultEncodes["yaml"](v, &b))
	require.Equal(t, "poll_id: 3\ntitle: first poll\n", b.String())
}
