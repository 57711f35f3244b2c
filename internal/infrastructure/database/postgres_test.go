package database

import (
	"testing"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm/logger"
)

func TestGormLogLevel(t *testing.T) {
	cases := map[logrus.Level]logger.LogLevel{
		logrus.TraceLevel: logger.Info,
		logrus.DebugLevel: logger.Info,
		logrus.InfoLevel:  logger.Warn,
		logrus.WarnLevel:  logger.Warn,
		logrus.ErrorLevel: logger.Error,
		logrus.PanicLevel: logger.Silent,
	}
	for in, expected := range cases {
		if got := gormLogLevel(in); got != expected {
			t.Errorf("gormLogLevel(%v) = %v, want %v", in, got, expected)
		}
	}
}
