package fileserver

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "chart.html"), []byte("<html>chart</html>"), 0o644))

	s, err := New(dir, WithArtifact("chart.html"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Stop(context.Background()) })
	return s, dir
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestStartServesArtifact(t *testing.T) {
	s, _ := newTestServer(t)

	url, err := s.Start(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("http://localhost:%d/chart.html", s.Port()), url)
	assert.True(t, s.Running())

	status, body := get(t, fmt.Sprintf("http://127.0.0.1:%d/chart.html", s.Port()))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "<html>chart</html>", body)
}

func TestStartIsIdempotent(t *testing.T) {
	s, _ := newTestServer(t)

	first, err := s.Start(context.Background())
	require.NoError(t, err)
	port := s.Port()

	second, err := s.Start(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, port, s.Port())
}

func TestStopReleasesPort(t *testing.T) {
	s, _ := newTestServer(t)

	_, err := s.Start(context.Background())
	require.NoError(t, err)
	require.NoError(t, s.Stop(context.Background()))
	assert.False(t, s.Running())

	l, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", s.Port()))
	require.NoError(t, err, "port should be free after Stop")
	require.NoError(t, l.Close())
}

func TestStopWhenNotRunningIsNoop(t *testing.T) {
	s, _ := newTestServer(t)

	assert.NoError(t, s.Stop(context.Background()))
	assert.NoError(t, s.Stop(context.Background()))
}

func TestRestartReusesPort(t *testing.T) {
	s, _ := newTestServer(t)

	first, err := s.Start(context.Background())
	require.NoError(t, err)
	require.NoError(t, s.Stop(context.Background()))

	second, err := s.Start(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.True(t, s.Running())
}

func TestServesFreshContentAfterRewrite(t *testing.T) {
	s, dir := newTestServer(t)

	_, err := s.Start(context.Background())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "chart.html"), []byte("<html>tips</html>"), 0o644))

	_, body := get(t, fmt.Sprintf("http://127.0.0.1:%d/chart.html", s.Port()))
	assert.Equal(t, "<html>tips</html>", body)
}

func TestMissingFileIs404(t *testing.T) {
	s, _ := newTestServer(t)

	_, err := s.Start(context.Background())
	require.NoError(t, err)

	status, _ := get(t, fmt.Sprintf("http://127.0.0.1:%d/nope.html", s.Port()))
	assert.Equal(t, http.StatusNotFound, status)
}

func TestStartFailsWhenPortTaken(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	port := l.Addr().(*net.TCPAddr).Port

	s, err := New(t.TempDir(), WithPort(port))
	require.NoError(t, err)

	_, err = s.Start(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBind)
	assert.False(t, s.Running())
}

func TestStartHonoursCancelledContext(t *testing.T) {
	s, _ := newTestServer(t)

	// A cancelled context may race the ready signal; either outcome must leave
	// the server consistent.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Start(ctx); err != nil {
		assert.ErrorIs(t, err, ErrBind)
		assert.False(t, s.Running())
	}
}
