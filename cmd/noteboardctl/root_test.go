package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"Noteboard/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestHashCmd(t *testing.T) {
	out, err := runCmd(t, "hash", "--cost", "4", "s3cret-pass")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(out), []byte("s3cret-pass")))

	_, err = runCmd(t, "hash")
	assert.Error(t, err)
}

func TestTokenCmd(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("JWT_SECRET", "ctl-secret")
	t.Setenv("JWT_ISSUER", "noteboard")

	out, err := runCmd(t, "token", "--sub", "user-1", "--role", "admin")
	require.NoError(t, err)

	claims, err := auth.NewTokens("ctl-secret", 0, "noteboard").Parse(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "admin", claims.Role)
}

func TestTokenCmdRejects(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("STORAGE_DRIVER", "memory")

	_, err := runCmd(t, "token")
	assert.Error(t, err)

	_, err = runCmd(t, "token", "--sub", "user-1", "--role", "root")
	assert.Error(t, err)
}

func TestMigrateCmdValidatesArgs(t *testing.T) {
	_, err := runCmd(t, "migrate", "sideways", "--dsn", "postgres://localhost/x")
	assert.Error(t, err)

	_, err = runCmd(t, "migrate")
	assert.Error(t, err)
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()

	assert.NoError(t, loadEnv(filepath.Join(dir, "missing.env")))

	good := filepath.Join(dir, "good.env")
	require.NoError(t, os.WriteFile(good, []byte("NOTEBOARDCTL_TEST_VAR=ok\n"), 0o600))
	t.Setenv("NOTEBOARDCTL_TEST_VAR", "")
	require.NoError(t, os.Unsetenv("NOTEBOARDCTL_TEST_VAR"))
	require.NoError(t, loadEnv(good))
	assert.Equal(t, "ok", os.Getenv("NOTEBOARDCTL_TEST_VAR"))

	bad := filepath.Join(dir, "bad.env")
	require.NoError(t, os.WriteFile(bad, []byte("KEY='unterminated\n"), 0o600))
	err := loadEnv(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.env")
}
