package presenter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chartview/internal/chart"
	"chartview/internal/fileserver"
)

// recorder collects collaborator calls in order across goroutines.
type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) add(e string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

type fakeArtifact struct {
	rec  *recorder
	path string
	err  error
}

func (a *fakeArtifact) Path() string { return a.path }

func (a *fakeArtifact) Generate() error {
	a.rec.add("generate")
	if a.err != nil {
		return a.err
	}
	return os.WriteFile(a.path, []byte("<html></html>"), 0o644)
}

type fakeServer struct {
	rec *recorder
	url string
	err error
}

func (s *fakeServer) Start(context.Context) (string, error) {
	s.rec.add("server.start")
	return s.url, s.err
}

type fakeLauncher struct {
	rec *recorder
	err error
}

func (l *fakeLauncher) Launch(url string) error {
	l.rec.add("launch " + url)
	return l.err
}

type fakeViewer struct {
	rec   *recorder
	err   error
	panic bool
	// release, when set, keeps the view open until closed or ctx is done.
	release chan struct{}
}

func (v *fakeViewer) Open(ctx context.Context, url string) error {
	v.rec.add("view.open " + url)
	if v.panic {
		panic("renderer crashed")
	}
	if v.release != nil {
		select {
		case <-v.release:
		case <-ctx.Done():
		}
	}
	v.rec.add("view.closed")
	return v.err
}

type fakeWindow struct {
	rec     *recorder
	hideErr error
}

func (w *fakeWindow) Hide(context.Context) error {
	w.rec.add("window.hide")
	return w.hideErr
}

func (w *fakeWindow) Show() { w.rec.add("window.show") }

type fixture struct {
	rec      *recorder
	artifact *fakeArtifact
	server   *fakeServer
	launcher *fakeLauncher
	viewer   *fakeViewer
	window   *fakeWindow
	opened   []string
	d        *Dispatcher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	rec := &recorder{}
	f := &fixture{
		rec:      rec,
		artifact: &fakeArtifact{rec: rec, path: filepath.Join(t.TempDir(), "chart.html")},
		server:   &fakeServer{rec: rec, url: "http://localhost:5555/chart.html"},
		launcher: &fakeLauncher{rec: rec},
		viewer:   &fakeViewer{rec: rec},
		window:   &fakeWindow{rec: rec},
	}
	f.d = New(Deps{
		Artifact: f.artifact,
		Server:   f.server,
		Opener: OpenerFunc(func(url string) error {
			rec.add("open " + url)
			f.opened = append(f.opened, url)
			return nil
		}),
		Launcher: f.launcher,
		Viewer:   f.viewer,
		Window:   f.window,
	})
	return f
}

func TestModeStrings(t *testing.T) {
	for _, m := range Modes() {
		parsed, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)

		byLabel, ok := ModeForLabel(m.Label())
		require.True(t, ok)
		assert.Equal(t, m, byLabel)
	}
	assert.Equal(t, "webview_separate", EmbeddedToggled.String())

	_, err := ParseMode("carrier_pigeon")
	assert.Error(t, err)
	_, ok := ModeForLabel("nope")
	assert.False(t, ok)
}

func TestShowBrowserRegeneratesMissingArtifactFirst(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.d.Show(context.Background(), Browser))

	assert.Equal(t, []string{
		"generate",
		"server.start",
		"open http://localhost:5555/chart.html",
	}, f.rec.list())
	assert.FileExists(t, f.artifact.path)
}

func TestShowSkipsGenerationWhenArtifactExists(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(f.artifact.path, []byte("x"), 0o644))

	require.NoError(t, f.d.Show(context.Background(), Browser))
	assert.NotContains(t, f.rec.list(), "generate")
}

func TestShowRenderFailureDoesNotStartServer(t *testing.T) {
	f := newFixture(t)
	f.artifact.err = errors.New("plot library exploded")

	err := f.d.Show(context.Background(), Browser)

	assert.ErrorIs(t, err, ErrRender)
	assert.Equal(t, []string{"generate"}, f.rec.list())
}

func TestShowPropagatesBindFailure(t *testing.T) {
	f := newFixture(t)
	f.server.err = fmt.Errorf("%w: address in use", ErrBind)

	for _, m := range Modes() {
		err := f.d.Show(context.Background(), m)
		assert.ErrorIs(t, err, ErrBind, "mode %s", m)
	}
	assert.NotContains(t, f.rec.list(), "window.hide")
}

func TestShowBrowserOpenFailureIsLaunchError(t *testing.T) {
	f := newFixture(t)
	f.d.opener = OpenerFunc(func(string) error { return errors.New("no handler") })

	err := f.d.Show(context.Background(), Browser)
	assert.ErrorIs(t, err, ErrLaunch)
}

func TestShowEmbeddedProcess(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.d.Show(context.Background(), EmbeddedProcess))
	assert.Contains(t, f.rec.list(), "launch http://localhost:5555/chart.html")

	f.launcher.err = errors.New("fork failed")
	assert.ErrorIs(t, f.d.Show(context.Background(), EmbeddedProcess), ErrLaunch)
}

func TestShowToggledHidesThenRestores(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.d.Show(context.Background(), EmbeddedToggled))
	f.d.Wait()

	assert.Equal(t, []string{
		"generate",
		"server.start",
		"window.hide",
		"view.open http://localhost:5555/chart.html",
		"view.closed",
		"window.show",
	}, f.rec.list())
	assert.Equal(t, MainVisible, f.d.State())
}

func TestShowToggledRestoresAfterViewError(t *testing.T) {
	f := newFixture(t)
	f.viewer.err = errors.New("webview crashed")

	require.NoError(t, f.d.Show(context.Background(), EmbeddedToggled), "success means the request was issued")
	f.d.Wait()

	events := f.rec.list()
	assert.Equal(t, "window.show", events[len(events)-1])
	assert.Equal(t, MainVisible, f.d.State())
}

func TestShowToggledRestoresAfterViewPanic(t *testing.T) {
	f := newFixture(t)
	f.viewer.panic = true

	require.NoError(t, f.d.Show(context.Background(), EmbeddedToggled))
	f.d.Wait()

	events := f.rec.list()
	assert.Equal(t, "window.show", events[len(events)-1])
	assert.Equal(t, MainVisible, f.d.State())
}

func TestShowToggledRestoresWhenHideFails(t *testing.T) {
	f := newFixture(t)
	f.window.hideErr = context.Canceled

	require.NoError(t, f.d.Show(context.Background(), EmbeddedToggled))
	f.d.Wait()

	events := f.rec.list()
	assert.NotContains(t, events, "view.open http://localhost:5555/chart.html")
	assert.Equal(t, "window.show", events[len(events)-1])
}

func TestShowToggledRejectsSecondView(t *testing.T) {
	f := newFixture(t)
	f.viewer.release = make(chan struct{})

	require.NoError(t, f.d.Show(context.Background(), EmbeddedToggled))
	require.Eventually(t, func() bool { return f.d.State() == ViewOpen }, time.Second, 5*time.Millisecond)

	assert.ErrorIs(t, f.d.Show(context.Background(), EmbeddedToggled), ErrViewOpen)

	close(f.viewer.release)
	f.d.Wait()
	assert.Equal(t, MainVisible, f.d.State())
	assert.NoError(t, f.d.Show(context.Background(), EmbeddedToggled))
	f.d.Wait()
}

func TestCloseEndsOpenViewAndRejectsShow(t *testing.T) {
	f := newFixture(t)
	f.viewer.release = make(chan struct{})

	require.NoError(t, f.d.Show(context.Background(), EmbeddedToggled))
	require.Eventually(t, func() bool { return f.d.State() == ViewOpen }, time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, f.d.Close(ctx))

	events := f.rec.list()
	assert.Equal(t, "window.show", events[len(events)-1])
	assert.ErrorIs(t, f.d.Show(context.Background(), Browser), ErrClosed)
}

func TestShowToggledWithoutViewer(t *testing.T) {
	f := newFixture(t)
	f.d.viewer = nil

	assert.ErrorIs(t, f.d.Show(context.Background(), EmbeddedToggled), ErrLaunch)
}

func TestShowUnknownMode(t *testing.T) {
	f := newFixture(t)
	assert.ErrorIs(t, f.d.Show(context.Background(), Mode(42)), ErrLaunch)
}

// The end-to-end browser scenario: the artifact is missing, the real renderer
// and file server are used, and the opener is called with the served URL.
func TestBrowserScenarioWithRealServer(t *testing.T) {
	dir := t.TempDir()
	renderer, err := chart.NewRenderer(nil)
	require.NoError(t, err)
	src := chart.NewSource(renderer, filepath.Join(dir, "chart.html"), "iris")

	srv, err := fileserver.New(dir, fileserver.WithArtifact("chart.html"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Stop(context.Background()) })

	var opened []string
	d := New(Deps{
		Artifact: src,
		Server:   srv,
		Opener:   OpenerFunc(func(url string) error { opened = append(opened, url); return nil }),
	})

	require.NoError(t, d.Show(context.Background(), Browser))

	assert.FileExists(t, src.Path())
	assert.True(t, srv.Running())
	assert.Equal(t, []string{fmt.Sprintf("http://localhost:%d/chart.html", srv.Port())}, opened)
}
