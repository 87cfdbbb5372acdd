// Package testutil contains helpers for tests that need a docs site on disk.
package testutil

const (
	testDirPermissions  = 0o750
	testFilePermissions = 0o600
)
