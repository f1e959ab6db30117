package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDescriptorFlag(t *testing.T) {
	var out bytes.Buffer
	cfg, shouldExit, err := Parse([]string{"-descriptor", "deploy.hcl"}, &out)
	require.NoError(t, err)
	require.False(t, shouldExit)
	require.Equal(t, "deploy.hcl", cfg.DescriptorPath)
	require.Equal(t, "json", cfg.LogFormat)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestParseShorthandAndPositional(t *testing.T) {
	var out bytes.Buffer

	cfg, _, err := Parse([]string{"-d", "short.hcl"}, &out)
	require.NoError(t, err)
	require.Equal(t, "short.hcl", cfg.DescriptorPath)

	cfg, _, err = Parse([]string{"positional.hcl"}, &out)
	require.NoError(t, err)
	require.Equal(t, "positional.hcl", cfg.DescriptorPath)
}

func TestParseDescriptorFlagWinsOverPositional(t *testing.T) {
	var out bytes.Buffer
	cfg, _, err := Parse([]string{"-descriptor", "flag.hcl", "positional.hcl"}, &out)
	require.NoError(t, err)
	require.Equal(t, "flag.hcl", cfg.DescriptorPath)
}

func TestParseListenOverride(t *testing.T) {
	var out bytes.Buffer
	cfg, _, err := Parse([]string{"-listen", ":9090", "deploy.hcl"}, &out)
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.ListenAddr)
}

func TestParseNoArgsPrintsUsage(t *testing.T) {
	var out bytes.Buffer
	cfg, shouldExit, err := Parse(nil, &out)
	require.NoError(t, err)
	require.True(t, shouldExit)
	require.Nil(t, cfg)
	require.Contains(t, out.String(), "Usage:")
}

func TestParseHelpFlag(t *testing.T) {
	var out bytes.Buffer
	cfg, shouldExit, err := Parse([]string{"-h"}, &out)
	require.NoError(t, err)
	require.True(t, shouldExit)
	require.Nil(t, cfg)
}

func TestParseInvalidLogFormat(t *testing.T) {
	var out bytes.Buffer
	_, _, err := Parse([]string{"-log-format", "xml", "deploy.hcl"}, &out)

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	require.Equal(t, 2, exitErr.Code)
	require.Contains(t, exitErr.Message, "log-format")
}

func TestParseInvalidLogLevel(t *testing.T) {
	var out bytes.Buffer
	_, _, err := Parse([]string{"-log-level", "verbose", "deploy.hcl"}, &out)

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	require.Equal(t, 2, exitErr.Code)
	require.Contains(t, exitErr.Message, "log-level")
}

func TestParseUnknownFlag(t *testing.T) {
	var out bytes.Buffer
	_, _, err := Parse([]string{"-bogus"}, &out)

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	require.Equal(t, 2, exitErr.Code)
}

func TestParseNormalizesCase(t *testing.T) {
	var out bytes.Buffer
	cfg, _, err := Parse([]string{"-log-format", "TEXT", "-log-level", "DEBUG", "deploy.hcl"}, &out)
	require.NoError(t, err)
	require.Equal(t, "text", cfg.LogFormat)
	require.Equal(t, "debug", cfg.LogLevel)
}
