package engine

import (
	"boscoin.io/votebook/lib/common"
)

// deferFunc logs which step of a checker stopped the operation.
func deferFunc(name string) common.CheckerDeferFunc {
	return func(n int, _ common.Checker, err error) {
		if err == nil {
			return
		}
		log.Debug("check failed", "checker", name, "step", n, "error", err)
	}
}
