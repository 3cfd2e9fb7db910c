package bomcodec

import (
	"github.com/anchore/bomcodec/bomcodec/logger"
	"github.com/anchore/bomcodec/internal/log"
)

// SetLogger installs the logger used by the codecs (debug and trace messages only). No logging happens until
// a logger is set.
func SetLogger(logger logger.Logger) {
	log.Log = logger
}
