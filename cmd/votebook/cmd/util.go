package cmd

import (
	"fmt"

	logging "github.com/inconshreveable/log15"

	cmdcommon "boscoin.io/votebook/cmd/votebook/common"
	"boscoin.io/votebook/lib/common"
	"boscoin.io/votebook/lib/engine"
	"boscoin.io/votebook/lib/network"
	"boscoin.io/votebook/lib/network/httpcache"
	"boscoin.io/votebook/lib/node"
	"boscoin.io/votebook/lib/node/runner"
)

var log logging.Logger = logging.New("module", "main")

func unknownFormatError(format string) error {
	return fmt.Errorf("%q not recognized", format)
}

// setLogging points every package logger at the handler made for
// `output`.
func setLogging(level, output string) (string, error) {
	logLevel, err := logging.LvlFromString(level)
	if err != nil {
		return "--log-level", err
	}

	logHandler, err := cmdcommon.NewLogHandler(output)
	if err != nil {
		return "--log-output", err
	}

	log.SetHandler(logging.LvlFilterHandler(logLevel, logHandler))
	common.SetLogging(logLevel, logHandler)
	engine.SetLogging(logLevel, logHandler)
	node.SetLogging(logLevel, logHandler)
	runner.SetLogging(logLevel, logHandler)
	network.SetLogging(logLevel, logHandler)
	httpcache.SetLogging(logLevel, logHandler)

	return "", nil
}
