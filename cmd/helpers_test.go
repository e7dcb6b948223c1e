package cmd

import (
	"testing"
	"time"

	"github.com/chris-regnier/dialcal/internal/config"
)

var testDate = time.Date(2024, time.May, 15, 9, 30, 0, 0, time.Local)

func setupTestEnv(t *testing.T) {
	t.Helper()
	appConfig = &config.Config{View: "weekly", Locale: "en_US", Notes: "memory"}
	jsonOutput = false
}
