package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunSucceedsAgainstTheShippedGoldenFixture(t *testing.T) {
	code := run([]string{"-quiet", "-golden", "testdata/golden.txtar"})
	assert.Equal(t, 0, code)
}

func TestRunFailsOnUnknownFlag(t *testing.T) {
	code := run([]string{"-nonexistent-flag"})
	assert.Equal(t, 2, code)
}

func TestRunFailsOnMissingConfigFile(t *testing.T) {
	code := run([]string{"-quiet", "-config", "testdata/does-not-exist.yaml"})
	assert.Equal(t, 1, code)
}
