package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the application logger: text output in development,
// JSON everywhere else.
func NewLogger(cfg *Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	if cfg.Dev() {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
		logger.WithField("value", cfg.App.LogLevel).Warn("invalid LOG_LEVEL, using info")
	}
	logger.SetLevel(level)
	return logger
}

// LogError logs err with the module/function fields used across the app.
func LogError(logger logrus.FieldLogger, module, funcName string, data any, err error) {
	fields := logrus.Fields{"module": module, "funcName": funcName}
	if data != nil {
		fields["data"] = data
	}
	logger.WithFields(fields).Error(err.Error())
}
