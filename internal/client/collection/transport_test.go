package collection

import (
	"context"
	"encoding/pem"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient_Plain(t *testing.T) {
	c, err := NewHTTPClient(3*time.Second, "")
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, c.Timeout)
	assert.Nil(t, c.Transport)
}

func TestNewHTTPClient_MissingCA(t *testing.T) {
	_, err := NewHTTPClient(time.Second, filepath.Join(t.TempDir(), "ca.crt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read CA cert")
}

func TestNewHTTPClient_BadCA(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ca.crt")
	require.NoError(t, os.WriteFile(path, []byte("not a pem"), 0o600))

	_, err := NewHTTPClient(time.Second, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse CA cert")
}

func TestNewHTTPClient_TrustsCustomCA(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"todos":[]}`)
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "ca.crt")
	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: srv.Certificate().Raw})
	require.NoError(t, os.WriteFile(path, certPEM, 0o600))

	client, err := NewHTTPClient(time.Second, path)
	require.NoError(t, err)

	todos, err := NewTodos(client, srv.URL, nil).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, todos)
}
