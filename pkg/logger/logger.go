package logger

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// New создает JSON-логгер с заданным уровнем
func New(logLevel string) *logrus.Logger {
	log := logrus.New()

	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		// Некорректный уровень не должен ронять запуск
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}
