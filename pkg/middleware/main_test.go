package middleware

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "middleware-test")
	if err != nil {
		panic(err)
	}
	_ = os.Setenv("LOG_PATH", filepath.Join(dir, "app.log"))
	_ = os.Setenv("LOG_LEVEL", "silent")
	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}
