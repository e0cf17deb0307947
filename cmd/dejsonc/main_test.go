package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseArgsOutputBeforeInput(t *testing.T) {
	a, err := parseArgs([]string{"--output", "out/model", "schema.djs"})
	require.NoError(t, err)
	require.Equal(t, "out/model", a.output)
	require.Equal(t, "schema.djs", a.input)
}

func TestParseArgsInputBeforeOutput(t *testing.T) {
	// order is free: the input path may precede --output, matching the
	// original compiler's argv handling.
	a, err := parseArgs([]string{"schema.djs", "--output", "out/model"})
	require.NoError(t, err)
	require.Equal(t, "out/model", a.output)
	require.Equal(t, "schema.djs", a.input)
}

func TestParseArgsAllFlagsAnyOrder(t *testing.T) {
	a, err := parseArgs([]string{"--verbose", "schema.djs", "--json-errors", "--output", "out/model", "--config", "dejsonc.yaml"})
	require.NoError(t, err)
	require.True(t, a.verbose)
	require.True(t, a.jsonErrors)
	require.Equal(t, "dejsonc.yaml", a.configPath)
	require.Equal(t, "out/model", a.output)
	require.Equal(t, "schema.djs", a.input)
}

func TestParseArgsMissingOutput(t *testing.T) {
	_, err := parseArgs([]string{"schema.djs"})
	require.ErrorContains(t, err, "--output is required")
}

func TestParseArgsMissingInput(t *testing.T) {
	_, err := parseArgs([]string{"--output", "out/model"})
	require.ErrorContains(t, err, "input file is required")
}

func TestParseArgsOutputWithoutValue(t *testing.T) {
	_, err := parseArgs([]string{"--output"})
	require.ErrorContains(t, err, "--output requires an argument")
}

func TestParseArgsTwoInputsRejected(t *testing.T) {
	_, err := parseArgs([]string{"--output", "out/model", "a.djs", "b.djs"})
	require.ErrorContains(t, err, "unexpected extra argument")
}

func TestPackageNameForNestedDir(t *testing.T) {
	require.Equal(t, "model", packageNameFor("internal/model/schema"))
}

func TestPackageNameForBareFilename(t *testing.T) {
	require.Equal(t, "main", packageNameFor("schema"))
}

func TestLoadConfig(t *testing.T) {
	config, err := loadConfig([]byte("verbose: true\njsonErrors: true\n"))
	require.NoError(t, err)
	require.True(t, config.Verbose)
	require.True(t, config.JSONErrors)
}
