package util

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetenv(t *testing.T) {
	a := assert.New(t)
	a.Equal("config.yaml", Getenv("HL_TEST_GETENV", "config.yaml"))

	defer SetEnv("HL_TEST_GETENV", "other.yaml")()
	a.Equal("other.yaml", Getenv("HL_TEST_GETENV", "config.yaml"))

	// empty values fall back to the default
	defer SetEnv("HL_TEST_GETENV", "")()
	a.Equal("config.yaml", Getenv("HL_TEST_GETENV", "config.yaml"))
}

func TestSetEnv(t *testing.T) {
	a := assert.New(t)
	_, found := os.LookupEnv("HL_TEST_SETENV")
	a.False(found)

	restore := SetEnv("HL_TEST_SETENV", "special")
	a.Equal("special", os.Getenv("HL_TEST_SETENV"))

	restoreNested := SetEnv("HL_TEST_SETENV", "plain")
	a.Equal("plain", os.Getenv("HL_TEST_SETENV"))

	restoreNested()
	a.Equal("special", os.Getenv("HL_TEST_SETENV"))

	restore()
	_, found = os.LookupEnv("HL_TEST_SETENV")
	a.False(found)
}
