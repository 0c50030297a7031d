package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Version(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, run(context.Background(), []string{"-version"}, strings.NewReader(""), &out))

	assert.Contains(t, out.String(), "bankbook dev")
}

func TestRun_FlatFileSessionWithAutoload(t *testing.T) {
	dir := t.TempDir()
	dataFile := filepath.Join(dir, "accounts.txt")
	require.NoError(t, os.WriteFile(dataFile, []byte("101\nAsha\n1575\n"), 0o644))
	args := []string{
		"-env-file", filepath.Join(dir, ".env"),
		"-data-file", dataFile,
		"-log-file", filepath.Join(dir, "bankbook.log"),
		"-autoload",
	}
	var out bytes.Buffer

	err := run(context.Background(), args, strings.NewReader("3\n101\n25\n8\n10\n"), &out)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Deposited Rs.25.00 successfully.")
	contents, err := os.ReadFile(dataFile)
	require.NoError(t, err)
	assert.Equal(t, "101\nAsha\n1600\n", string(contents))
}

func TestRun_SQLiteStore(t *testing.T) {
	dir := t.TempDir()
	args := []string{
		"-env-file", filepath.Join(dir, ".env"),
		"-store", "sqlite",
		"-sqlite-path", filepath.Join(dir, "accounts.db"),
		"-log-file", filepath.Join(dir, "bankbook.log"),
	}

	var out bytes.Buffer
	input := "1\n7\nRavi Kumar\n40\n2\n8\n10\n"
	require.NoError(t, run(context.Background(), args, strings.NewReader(input), &out))
	assert.Contains(t, out.String(), "Accounts saved to file successfully.")

	out.Reset()
	require.NoError(t, run(context.Background(), append(args, "-autoload"), strings.NewReader("2\n7\n10\n"), &out))
	assert.Contains(t, out.String(), "Account Holder: Ravi Kumar")
	assert.Contains(t, out.String(), "Balance: Rs.40.00")
	assert.Contains(t, out.String(), "Interest Type: Fixed (5%)")
}

func TestRun_InvalidStoreFlag(t *testing.T) {
	dir := t.TempDir()
	args := []string{"-env-file", filepath.Join(dir, ".env"), "-store", "postgres"}

	err := run(context.Background(), args, strings.NewReader(""), &bytes.Buffer{})

	assert.Error(t, err)
}
