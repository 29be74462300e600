package modkit

import (
	"shelfwatch/internal/modkit/repokit"
	"shelfwatch/internal/platform/config"
	"shelfwatch/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	// DB is nil when no store driver is configured
	DB repokit.TxRunner
}
