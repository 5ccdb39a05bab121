package cmd

import (
	"os"

	"github.com/spf13/cobra"

	cmdcommon "boscoin.io/votebook/cmd/votebook/common"
	"boscoin.io/votebook/lib/version"
)

var flagVersionFormat string = "yaml"

func init() {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(c *cobra.Command, args []string) {
			encode, ok := cmdcommon.DefaultEncodes[flagVersionFormat]
			if !ok {
				cmdcommon.PrintFlagsError(c, "--format", unknownFormatError(flagVersionFormat))
			}

			v := map[string]string{
				"version":    version.Version,
				"git-commit": version.GitCommit,
				"git-state":  version.GitState,
				"build-date": version.BuildDate,
			}
			if err := encode(v, os.Stdout); err != nil {
				cmdcommon.PrintError(c, err)
			}
		},
	}
	versionCmd.Flags().StringVar(&flagVersionFormat, "format", flagVersionFormat, "format={json, prettyjson, yaml}")

	rootCmd.AddCommand(versionCmd)
}
