package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/storefront-backend/internal/utils"
)

func hashFrom(t *testing.T, out string) string {
	t.Helper()
	line := strings.TrimSpace(out)
	require.True(t, strings.HasPrefix(line, "ADMIN_PASSWORD_HASH="))
	return strings.TrimPrefix(line, "ADMIN_PASSWORD_HASH=")
}

func TestRun_FromArgument(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"s3cret-pass"}, strings.NewReader(""), &out))

	hash := hashFrom(t, out.String())
	assert.True(t, utils.CheckPassword(hash, "s3cret-pass"))
	assert.False(t, utils.CheckPassword(hash, "other"))
}

func TestRun_FromStdin(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(nil, strings.NewReader("piped-pass\r\nignored\n"), &out))

	assert.True(t, utils.CheckPassword(hashFrom(t, out.String()), "piped-pass"))
}

func TestRun_RejectsEmptyPassword(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, run([]string{""}, strings.NewReader(""), &out))
	assert.Error(t, run(nil, strings.NewReader("\n"), &out))
	assert.Empty(t, out.String())
}
