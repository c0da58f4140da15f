package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumValue(t *testing.T) {
	var out string
	v := newEnumValue(&out, "text", "json")

	require.NoError(t, v.Set("json"))
	assert.Equal(t, "json", out)

	require.NoError(t, v.Set(" TEXT "))
	assert.Equal(t, "text", out, "values are normalized before matching")

	err := v.Set("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be one of: text, json")
	assert.Equal(t, "text", out, "rejected values leave the target alone")

	assert.Equal(t, "text", v.String())
	assert.Equal(t, "string", v.Type())
}

func TestLogLevelFlagRejectsUnknownLevels(t *testing.T) {
	t.Cleanup(func() { logLevel = "" })

	err := rootCmd.PersistentFlags().Set("log-level", "noisy")
	require.Error(t, err)

	require.NoError(t, rootCmd.PersistentFlags().Set("log-level", "error"))
	assert.Equal(t, "error", logLevel)
}
