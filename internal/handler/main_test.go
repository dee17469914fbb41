package handler_test

import (
	"os"
	"testing"

	"exam-api/internal/config"
	"exam-api/internal/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Env: "test", Level: "error"}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}
