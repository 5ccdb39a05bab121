package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	cmdcommon "boscoin.io/votebook/cmd/votebook/common"
	"boscoin.io/votebook/lib/client"
	"boscoin.io/votebook/lib/common"
	"boscoin.io/votebook/lib/engine"
	"boscoin.io/votebook/lib/entity"
	"boscoin.io/votebook/lib/node"
	"boscoin.io/votebook/lib/storage"
)

var (
	flagResultsStorage string
	flagResultsRemote  string
	flagResultsFormat  string = "yaml"
)

func init() {
	resultsCmd := &cobra.Command{
		Use:   "results <poll address>",
		Short: "Print the results of a poll",
		Long: `Print the results of a poll.

The results are read from the local storage; the storage can not be opened
while a node runs over it, use --remote to ask the node instead.`,
		Args: cobra.ExactArgs(1),
		Run: func(c *cobra.Command, args []string) {
			encode, ok := cmdcommon.DefaultEncodes[flagResultsFormat]
			if !ok {
				cmdcommon.PrintFlagsError(c, "--format", unknownFormatError(flagResultsFormat))
			}
			if _, err := common.ParseKey(args[0]); err != nil {
				cmdcommon.PrintFlagsError(c, "<poll address>", err)
			}

			var v interface{}
			var err error
			if len(flagResultsRemote) > 0 {
				v, err = remoteResults(flagResultsRemote, args[0])
			} else {
				v, err = localResults(flagResultsStorage, args[0])
			}
			if err != nil {
				cmdcommon.PrintError(c, err)
			}

			if err = encode(v, os.Stdout); err != nil {
				cmdcommon.PrintError(c, err)
			}
		},
	}

	if currentDirectory, err := os.Getwd(); err == nil {
		if currentDirectory, err = filepath.Abs(currentDirectory); err == nil {
			flagResultsStorage = fmt.Sprintf("file://%s/db", currentDirectory)
		}
	}
	flagResultsStorage = common.GetENVValue("VOTEBOOK_STORAGE", flagResultsStorage)

	resultsCmd.Flags().StringVar(&flagResultsStorage, "storage", flagResultsStorage, "storage uri")
	resultsCmd.Flags().StringVar(&flagResultsRemote, "remote", flagResultsRemote, "node endpoint to ask instead of the storage")
	resultsCmd.Flags().StringVar(&flagResultsFormat, "format", flagResultsFormat, "format={json, prettyjson, yaml}")

	rootCmd.AddCommand(resultsCmd)
}

func localResults(storageURI, address string) (*entity.Results, error) {
	config, err := storage.NewConfigFromString(storageURI)
	if err != nil {
		return nil, err
	}
	if config.Scheme == "file" {
		// leveldb would create an empty database at a wrong path
		if !common.IsExists(config.Path) {
			return nil, errors.Errorf("storage not found: %s", config.Path)
		}
		if empty, err := common.IsEmpty(config.Path); err != nil || empty {
			return nil, errors.Errorf("storage is empty: %s", config.Path)
		}
	}

	st, err := storage.NewStorage(config)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open storage")
	}
	defer st.Close()

	e := engine.NewEngine(common.NewConfig(nil), &common.SystemClock{})
	return node.GetResults(st, e, address)
}

func remoteResults(endpoint, address string) (client.Results, error) {
	cl, err := client.NewClient(endpoint, common.DefaultHTTPTimeout, client.DefaultRetrySetting)
	if err != nil {
		return client.Results{}, err
	}
	defer cl.Close()

	results, err := cl.LoadResults(address)
	if err != nil {
		return results, errors.Wrapf(err, "failed to load results of %s", address)
	}
	return results, nil
}
