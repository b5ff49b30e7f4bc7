package util

import (
	"go.uber.org/zap"
)

var Logger *zap.Logger

// InitializeLogger sets up the process-wide logger. Deployed binaries run
// with the production config; set environment to "development" for
// human-readable output.
func InitializeLogger(environment string) {
	if environment == "development" {
		Logger = zap.Must(zap.NewDevelopment())
		return
	}
	Logger = zap.Must(zap.NewProduction())
}
