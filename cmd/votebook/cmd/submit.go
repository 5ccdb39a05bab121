package cmd

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	cmdcommon "boscoin.io/votebook/cmd/votebook/common"
	"boscoin.io/votebook/lib/client"
	"boscoin.io/votebook/lib/common"
	"boscoin.io/votebook/lib/common/keypair"
	"boscoin.io/votebook/lib/node"
)

var (
	flagEndpoint     string = common.GetENVValue("VOTEBOOK_ENDPOINT", "http://127.0.0.1:12345")
	flagSecretSeed   string = common.GetENVValue("VOTEBOOK_SECRET_SEED", "")
	flagTimeout      string = common.GetENVValue("VOTEBOOK_TIMEOUT", "10s")
	flagSubmitDryRun bool
	flagSubmitFormat string = "prettyjson"
)

func init() {
	submitCmd := &cobra.Command{
		Use:   "submit <request json file | ->",
		Short: "Sign an operation and submit it to a node",
		Long: `Sign an operation and submit it to a node.

The file holds the operation and its accounts, in order:

  {
    "operation": {"H": {"type": "cast-vote"}, "B": {"poll_id": 1, "option_index": 0, "fee_tx": "..."}},
    "accounts": [{"address": "<signer>"}, {"address": "<vote>", "writable": true}, ...]
  }
`,
		Args: cobra.ExactArgs(1),
		Run: func(c *cobra.Command, args []string) {
			encode, ok := cmdcommon.DefaultEncodes[flagSubmitFormat]
			if !ok {
				cmdcommon.PrintFlagsError(c, "--format", unknownFormatError(flagSubmitFormat))
			}
			if len(flagNetworkID) < 1 {
				cmdcommon.PrintFlagsError(c, "--network-id", errors.New("--network-id must be given"))
			}

			kp, err := parseSecretSeed(flagSecretSeed)
			if err != nil {
				cmdcommon.PrintFlagsError(c, "--secret-seed", err)
			}

			timeout, err := time.ParseDuration(flagTimeout)
			if err != nil {
				cmdcommon.PrintFlagsError(c, "--timeout", err)
			}

			req, err := readRequest(args[0], kp, []byte(flagNetworkID))
			if err != nil {
				cmdcommon.PrintError(c, err)
			}

			if flagSubmitDryRun {
				if err = encode(req, os.Stdout); err != nil {
					cmdcommon.PrintError(c, err)
				}
				return
			}

			cl, err := client.NewClient(flagEndpoint, timeout, client.DefaultRetrySetting)
			if err != nil {
				cmdcommon.PrintError(c, err)
			}
			defer cl.Close()

			receipt, err := cl.Submit(req)
			if err != nil {
				cmdcommon.PrintError(c, errors.Wrap(err, "failed to submit request"))
			}

			if err = encode(receipt, os.Stdout); err != nil {
				cmdcommon.PrintError(c, err)
			}
		},
	}

	submitCmd.Flags().StringVar(&flagEndpoint, "endpoint", flagEndpoint, "node endpoint")
	submitCmd.Flags().StringVar(&flagNetworkID, "network-id", flagNetworkID, "network id")
	submitCmd.Flags().StringVar(&flagSecretSeed, "secret-seed", flagSecretSeed, "secret seed of the signer")
	submitCmd.Flags().StringVar(&flagTimeout, "timeout", flagTimeout, "request timeout")
	submitCmd.Flags().BoolVar(&flagSubmitDryRun, "dry-run", flagSubmitDryRun, "print the signed request instead of submitting it")
	submitCmd.Flags().StringVar(&flagSubmitFormat, "format", flagSubmitFormat, "format={json, prettyjson, yaml}")

	rootCmd.AddCommand(submitCmd)
}

func parseSecretSeed(seed string) (*keypair.Full, error) {
	if len(seed) < 1 {
		return nil, errors.New("must be given")
	}

	kp, err := keypair.Parse(seed)
	if err != nil {
		return nil, err
	}
	full, ok := kp.(*keypair.Full)
	if !ok {
		return nil, errors.New("not a secret seed")
	}

	return full, nil
}

// readRequest reads the request body from `path`, "-" being stdin, and
// signs it.
func readRequest(path string, kp *keypair.Full, networkID []byte) (*node.Request, error) {
	var b []byte
	var err error
	if path == "-" {
		b, err = ioutil.ReadAll(os.Stdin)
	} else {
		b, err = ioutil.ReadFile(path)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read request")
	}

	var body node.RequestBody
	if err = json.Unmarshal(b, &body); err != nil {
		return nil, errors.Wrap(err, "failed to parse request")
	}

	req := &node.Request{B: body}
	if err = req.Sign(kp, networkID); err != nil {
		return nil, errors.Wrap(err, "failed to sign request")
	}

	return req, nil
}
