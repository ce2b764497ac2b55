package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewLevelFromEnv(t *testing.T) {
	cases := map[string]logrus.Level{
		"debug":    logrus.DebugLevel,
		"warning":  logrus.WarnLevel,
		"error":    logrus.ErrorLevel,
		"":         logrus.InfoLevel,
		"nonsense": logrus.InfoLevel,
	}
	for env, want := range cases {
		t.Setenv("LOG_LEVEL", env)
		assert.Equal(t, want, New().GetLevel(), "LOG_LEVEL=%q", env)
	}
}
