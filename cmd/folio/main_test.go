package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenSecret(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, runCommand(&a, []string{"gen-secret"}))
	require.NoError(t, runCommand(&b, []string{"gen-secret"}))

	require.Len(t, strings.TrimSpace(a.String()), 43)
	require.NotEqual(t, a.String(), b.String())
}

func TestGenTOTP(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runCommand(&out, []string{"gen-totp", "operator"}))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[0], "ADMIN_TOTP_SECRET="))
	require.True(t, strings.HasPrefix(lines[1], "otpauth://totp/"))
	require.Contains(t, lines[1], "operator")

	require.Error(t, runCommand(&out, []string{"gen-totp"}))
}

func TestUnknownCommand(t *testing.T) {
	var out bytes.Buffer
	require.Error(t, runCommand(&out, []string{"serve-forever"}))

	require.NoError(t, runCommand(&out, []string{"help"}))
	require.Contains(t, out.String(), "gen-secret")
}
