package utils

import (
	"strings"

	"github.com/mongodb/grip"
	"github.com/mongodb/grip/level"
	"github.com/mongodb/grip/send"
	"github.com/pkg/errors"
)

// SetupLogging installs a JSON console sender named after the process as the
// global grip sender. Messages below threshold ("debug", "info", "warning",
// ...) are dropped.
func SetupLogging(name, threshold string) error {
	lvl := level.FromString(strings.ToLower(strings.TrimSpace(threshold)))
	if lvl == level.Invalid {
		lvl = level.Info
	}

	sender, err := send.NewJSONConsoleLogger(name, send.LevelInfo{Default: level.Info, Threshold: lvl})
	if err != nil {
		return errors.Wrap(err, "creating log sender")
	}
	return errors.Wrap(grip.SetSender(sender), "setting log sender")
}
