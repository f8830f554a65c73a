package testdb

import (
	"os"
	"strings"
)

// databaseURLEnvVars are consulted in order by GetTestDatabaseURL.
var databaseURLEnvVars = []string{
	"FLASH_TEST_DATABASE_URL",
	"FLASH_CORPUS_DATABASE_URL",
	"DATABASE_URL",
}

// GetTestDatabaseURL returns the first configured database URL, or "".
func GetTestDatabaseURL() string {
	for _, name := range databaseURLEnvVars {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
	}
	return ""
}

// IsIntegrationTestEnvironment reports whether a database is available.
func IsIntegrationTestEnvironment() bool {
	return GetTestDatabaseURL() != ""
}

// ShouldSkipDatabaseTest reports whether database tests should be skipped.
func ShouldSkipDatabaseTest() bool {
	return !IsIntegrationTestEnvironment()
}
