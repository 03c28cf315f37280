package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigitcukuren/mago-sub004/internal/diagnostics"
)

func TestParseGoldenReadsOneSectionPerScenario(t *testing.T) {
	golden, err := parseGolden([]byte("-- foo --\nInvalidArgument: 1\nTooFewArguments: 2\n"))
	require.NoError(t, err)
	require.Contains(t, golden, "foo")
	assert.Equal(t, 1, golden["foo"][diagnostics.InvalidArgument])
	assert.Equal(t, 2, golden["foo"][diagnostics.TooFewArguments])
}

func TestParseGoldenRejectsMalformedLine(t *testing.T) {
	_, err := parseGolden([]byte("-- foo --\nnot a count line\n"))
	assert.Error(t, err)
}

func TestCompareGoldenMatchesEveryScenario(t *testing.T) {
	golden, err := parseGolden(mustReadGoldenFixture(t))
	require.NoError(t, err)

	for _, sc := range scenarios {
		sink := sc.run()
		mismatches := compareGolden(sc.name, sink, golden)
		assert.Empty(t, mismatches, "scenario %s", sc.name)
	}
}

func mustReadGoldenFixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/golden.txtar")
	require.NoError(t, err)
	return data
}
