package key

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
	stellar "github.com/stellar/go/keypair"

	cmdcommon "boscoin.io/votebook/cmd/votebook/common"
	"boscoin.io/votebook/lib/common/keypair"
)

var (
	GenerateCmd *cobra.Command

	flagParse  bool
	flagFormat string = "default"
)

type keyPair struct {
	Seed       string  `json:"seed" yaml:"seed"`
	Address    string  `json:"address" yaml:"address"`
	Passphrase *string `json:"passphrase,omitempty" yaml:"passphrase,omitempty"`
}

var defaultTemplate = template.Must(template.New("").Funcs(template.FuncMap{
	"valueString": func(input *string) string {
		if input == nil {
			return ""
		}
		return *input
	},
}).Parse(`   Secret Seed: {{ .Seed }}
Public Address: {{ .Address }}{{ if valueString .Passphrase }}
    Passphrase: "{{ .Passphrase|valueString }}"{{ end }}
`))

func defaultEncode(v interface{}, w io.Writer) error {
	return defaultTemplate.Execute(w, v)
}

func onelineEncode(v interface{}, w io.Writer) error {
	kp := v.(keyPair)
	_, err := fmt.Fprintf(w, "%s %s\n", kp.Seed, kp.Address)
	return err
}

var encoders = map[string]cmdcommon.Encode{
	"json":       cmdcommon.DefaultEncodes["json"],
	"prettyjson": cmdcommon.DefaultEncodes["prettyjson"],
	"yaml":       cmdcommon.DefaultEncodes["yaml"],
	"default":    defaultEncode,
	"oneline":    onelineEncode,
}

func init() {
	GenerateCmd = &cobra.Command{
		Use:   "generate [<passphrase> | <secret seed>]",
		Short: "Generate keypair",
		Run: func(c *cobra.Command, args []string) {
			input := strings.TrimSpace(strings.Join(args, " "))

			if flagParse && len(input) < 1 {
				cmdcommon.PrintFlagsError(c, "--parse", errors.New("--parse needs <secret seed>"))
			}

			encode, ok := encoders[flagFormat]
			if !ok {
				cmdcommon.PrintFlagsError(c, "--format", fmt.Errorf("%q not recognized", flagFormat))
			}

			kp, err := generateKP(input, flagParse)
			if err != nil {
				cmdcommon.PrintFlagsError(c, "<input>", err)
			}

			v := keyPair{Seed: kp.Seed(), Address: kp.Address()}
			if !flagParse && len(input) > 0 {
				v.Passphrase = &input
			}
			if err = encode(v, os.Stdout); err != nil {
				cmdcommon.PrintError(c, err)
			}
		},
	}

	GenerateCmd.Flags().BoolVar(&flagParse, "parse", flagParse, "parse secret seed")
	GenerateCmd.Flags().StringVar(&flagFormat, "format", flagFormat, "format={default, json, oneline, prettyjson, yaml}")
}

// generateKP makes a random keypair, the keypair derived from a passphrase,
// or parses a secret seed when `fromSeed` is set.
func generateKP(seedOrPassphrase string, fromSeed bool) (*keypair.Full, error) {
	switch {
	case len(seedOrPassphrase) < 1:
		return stellar.Random()
	case fromSeed:
		kp, err := keypair.Parse(seedOrPassphrase)
		if err != nil {
			return nil, fmt.Errorf("failed to parse secret seed: %v", err)
		}
		full, ok := kp.(*keypair.Full)
		if !ok {
			return nil, errors.New("not a secret seed")
		}
		return full, nil
	default:
		return stellar.Master(seedOrPassphrase).(*keypair.Full), nil
	}
}
