package cmd

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/votebook/lib/account"
	"boscoin.io/votebook/lib/common"
	"boscoin.io/votebook/lib/common/keypair"
	"boscoin.io/votebook/lib/errors"
	"boscoin.io/votebook/lib/fee"
	"boscoin.io/votebook/lib/node"
	"boscoin.io/votebook/lib/node/runner"
	"boscoin.io/votebook/lib/operation"
	"boscoin.io/votebook/lib/storage"
)

func TestParseBindURL(t *testing.T) {
	u, err := parseBindURL("http://0.0.0.0:12345")
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0:12345", u.Host)

	_, err = parseBindURL("tcp://0.0.0.0:12345")
	require.Error(t, err)

	_, err = parseBindURL("http://")
	require.Error(t, err)
}

func TestParseFlagsNode(t *testing.T) {
	flagNetworkID = "votebook-test-network"
	flagBindURL = "http://127.0.0.1:12345"
	flagStorageConfigString = "memory://"
	flagRateLimitAPI = "10-S"
	flagCacheSize = "10"
	flagCacheExpire = "1s"
	flagHistoryLimit = "20"
	flagLogLevel = "error"

	flagName, err := parseFlagsNode()
	require.NoError(t, err, flagName)
	require.Equal(t, "memory", storageConfig.Scheme)
	require.Equal(t, []byte("votebook-test-network"), nodeConfig.NetworkID)
	require.Equal(t, "10-S", nodeConfig.RateLimitAPI)
	require.Equal(t, 10, nodeConfig.ResultsCacheSize)
	require.Equal(t, 20, nodeConfig.HistoryLimit)

	{ // broken values
		flagCacheSize = "0"
		flagName, err = parseFlagsNode()
		require.Error(t, err)
		require.Equal(t, "--cache-size", flagName)
		flagCacheSize = "10"

		flagLogLevel = "findme"
		flagName, err = parseFlagsNode()
		require.Error(t, err)
		require.Equal(t, "--log-level", flagName)
		flagLogLevel = "error"

		flagBindURL = "https://127.0.0.1:12345"
		flagTLSCertFile = "/not/found.crt"
		flagName, err = parseFlagsNode()
		require.Error(t, err)
		require.Equal(t, "--tls-cert", flagName)
		flagBindURL = "http://127.0.0.1:12345"

		flagNetworkID = ""
		flagName, err = parseFlagsNode()
		require.Error(t, err)
		require.Equal(t, "--network-id", flagName)
	}
}

func TestReadRequest(t *testing.T) {
	networkID := []byte("votebook-test-network")
	kp := keypair.Random()

	body := node.RequestBody{
		Operation: operation.MustNewOperation(operation.MakeTestCreatePoll(200, 1000, fee.MakeTestFeeTransaction())),
		Accounts: []node.AccountMeta{
			{Address: kp.Address()},
			{Address: account.TestMakeKey().Address(), Writable: true},
		},
	}
	b, err := json.Marshal(body)
	require.NoError(t, err)

	f, err := ioutil.TempFile("", "votebook-request")
	require.NoError(t, err)
	defer os.Remove(f.Name())
	_, err = f.Write(b)
	require.NoError(t, err)
	f.Close()

	req, err := readRequest(f.Name(), kp, networkID)
	require.NoError(t, err)
	require.Equal(t, kp.Address(), req.Signer)
	require.NoError(t, req.VerifySignature(networkID))
	require.Error(t, req.VerifySignature([]byte("another network")))

	_, err = readRequest(f.Name()+"-not-found", kp, networkID)
	require.Error(t, err)

	_, err = parseSecretSeed(kp.Address())
	require.Error(t, err)
	parsed, err := parseSecretSeed(kp.Seed())
	require.NoError(t, err)
	require.Equal(t, kp.Address(), parsed.Address())
}

func TestLocalResults(t *testing.T) {
	dir, err := ioutil.TempDir("", "votebook-db")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	uri := "file://" + filepath.Join(dir, "db")
	config, err := storage.NewConfigFromString(uri)
	require.NoError(t, err)

	st, err := storage.NewStorage(config)
	require.NoError(t, err)

	r := runner.NewRunner(st, common.NewTestConfig(), common.NewFixedClock(100))
	creator := keypair.Random()
	poll := account.TestMakeKey().Address()
	req := runner.NewTestRequest(
		r, creator, operation.MakeTestCreatePoll(200, 1000, fee.MakeTestFeeTransaction()),
		runner.Signer(creator),
		runner.Writable(poll),
		runner.Writable(account.TestMakeKey().Address()),
		runner.Writable(account.TestMakeKey().Address()),
	)
	_, err = r.Submit(req)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	results, err := localResults(uri, poll)
	require.NoError(t, err)
	require.Equal(t, "Which option?", results.Title)
	require.True(t, results.Available)
	require.Len(t, results.Options, 3)

	_, err = localResults(uri, account.TestMakeKey().Address())
	require.True(t, errors.Is(err, errors.StorageRecordDoesNotExist), err)

	{ // a missing storage is not created
		missing := filepath.Join(dir, "missing")
		_, err = localResults("file://"+missing, poll)
		require.Error(t, err)
		require.False(t, common.IsExists(missing))
	}
}
