package utils

import "time"

// -----------------------------------------------------------------------------

// Defaults shared by the binary and the reporting server.
const (
	DefaultMIC = "bvmf"

	DefaultStoreRetries = 3

	ShutdownTimeout = 5 * time.Second
)
