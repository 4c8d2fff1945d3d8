package main

import (
	"os"
	"testing"

	"github.com/joho/godotenv"
)

// TestMain mirrors main: a local .env may point the console at a real
// backend, so it is loaded here and each test overrides what it depends on.
func TestMain(m *testing.M) {
	_ = godotenv.Load()
	os.Exit(m.Run())
}
