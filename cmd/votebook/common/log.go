package common

import (
	"os"

	logging "github.com/inconshreveable/log15"
	"github.com/mattn/go-isatty"

	"boscoin.io/votebook/lib/common"
)

// NewLogHandler writes to `output`, or to stdout when it is empty; the
// terminal gets the human readable format and everything else json lines.
func NewLogHandler(output string) (logging.Handler, error) {
	if len(output) > 0 {
		return logging.FileHandler(output, common.JsonFormatEx(false, true))
	}

	var formatter logging.Format
	if isatty.IsTerminal(os.Stdout.Fd()) {
		formatter = logging.TerminalFormat()
	} else {
		formatter = common.JsonFormatEx(false, true)
	}

	return logging.StreamHandler(os.Stdout, formatter), nil
}
