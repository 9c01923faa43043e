package logger

import (
	"os"
	"sync"

	"github.com/anoideaopen/factory/core/stringsx"
	"github.com/sirupsen/logrus"
)

const (
	// logLevelEnv holds a level name understood by logrus.ParseLevel.
	logLevelEnv = "FACTORY_LOG_LEVEL"
	// logFormatEnv switches between the text and json formatters.
	logFormatEnv = "FACTORY_LOG_FORMAT"

	formatText = "text"
	formatJSON = "json"
)

var (
	lg   *logrus.Logger
	once sync.Once
)

// Logger returns the module logger, configured on first use from the
// FACTORY_LOG_LEVEL and FACTORY_LOG_FORMAT environment variables. An invalid
// level panics; an unknown format falls back to the text formatter.
func Logger() *logrus.Logger {
	once.Do(func() {
		lg = logrus.New()
		lg.SetOutput(os.Stderr)

		lvl := logrus.WarnLevel
		if levelStr, ok := os.LookupEnv(logLevelEnv); ok {
			var err error
			if lvl, err = logrus.ParseLevel(levelStr); err != nil {
				panic(err)
			}
		}
		lg.SetLevel(lvl)

		format := os.Getenv(logFormatEnv)
		if !stringsx.OneOf(format, formatText, formatJSON) {
			format = formatText
		}
		if format == formatJSON {
			lg.SetFormatter(&logrus.JSONFormatter{})
		} else {
			lg.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		}
	})

	return lg
}
