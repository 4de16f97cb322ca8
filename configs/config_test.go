package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_ReadsEnvironment(t *testing.T) {
	t.Setenv("INSTITUTE_CONFIG_TEST_KEY", "set")

	assert.Equal(t, "set", Config("INSTITUTE_CONFIG_TEST_KEY"))
	assert.Equal(t, "", Config("INSTITUTE_CONFIG_UNSET_KEY"))
}
