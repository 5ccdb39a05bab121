package network

import (
	logging "github.com/inconshreveable/log15"

	"boscoin.io/votebook/lib/common"
)

var log logging.Logger = logging.New("module", "network")

func SetLogging(level logging.Lvl, handler logging.Handler) {
	log.SetHandler(logging.LvlFilterHandler(level, handler))
}

func init() {
	SetLogging(common.DefaultLogLevel, common.DefaultLogHandler)
}
