// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package download

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIfMissing(t *testing.T) {
	content := []byte("some dataset bytes")
	sum := sha256.Sum256(content)
	hash := hex.EncodeToString(sum[:])

	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if r.URL.Path != "/file.gz" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(content)
	}))
	defer server.Close()

	dir := t.TempDir()
	target := filepath.Join(dir, "sub", "file.gz")
	require.NoError(t, IfMissing(server.URL+"/file.gz", target, hash, true))
	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, content, got)
	assert.Equal(t, int32(1), requests.Load())

	// Second call finds the file and doesn't download again.
	require.NoError(t, IfMissing(server.URL+"/file.gz", target, hash, false))
	assert.Equal(t, int32(1), requests.Load())

	// Bad status is an error, and leaves no file behind.
	missing := filepath.Join(dir, "missing.gz")
	require.Error(t, IfMissing(server.URL+"/missing.gz", missing, "", false))
	_, err = os.Stat(missing)
	assert.True(t, os.IsNotExist(err))
}

func TestValidateChecksum(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt")
	require.NoError(t, os.WriteFile(path, []byte("corrupt"), 0644))
	require.Error(t, ValidateChecksum(path, "0000"))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "file failing the checksum should be removed")
}
