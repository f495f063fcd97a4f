// Package corelog provides leveled, component-tagged operator logging via
// go-logging, kept strictly off stdout so it never corrupts the UCI wire
// protocol.
package corelog

import (
	"os"

	logging "github.com/op/go-logging"
)

// Engine, UCI and TT are the per-component loggers used across the
// codebase: one module, one tag, so verbosity can be raised per area.
var (
	Engine = logging.MustGetLogger("engine")
	UCI    = logging.MustGetLogger("uci")
	TT     = logging.MustGetLogger("tt")
)

var format = logging.MustStringFormatter(
	`%{time:15:04:05.000} %{level:.4s} %{module}: %{message}`,
)

func init() {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	formatted := logging.NewBackendFormatter(backend, format)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(logging.WARNING, "")
	logging.SetBackend(leveled)
}

// SetLevel raises or lowers verbosity for all components at once; level is
// one of "debug", "info", "warning", "error".
func SetLevel(level string) {
	lvl, err := logging.LogLevel(level)
	if err != nil {
		return
	}
	logging.SetLevel(lvl, "")
}
