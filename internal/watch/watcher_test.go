package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNew_Errors(t *testing.T) {
	noop := func(context.Context, string) {}

	_, err := New(nil, noop)
	assert.Error(t, err)

	_, err = New([]string{"a.html"}, nil)
	assert.Error(t, err)
}

func TestWatcher_ReportsChanges(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "page.html")
	other := filepath.Join(dir, "other.html")
	require.NoError(t, os.WriteFile(target, []byte("<p>"), 0644))

	changed := make(chan string, 10)
	w, err := New([]string{target}, func(_ context.Context, path string) {
		changed <- path
	}, WithDebounce(30*time.Millisecond))
	require.NoError(t, err)

	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(other, []byte("<p>"), 0644))
	require.NoError(t, os.WriteFile(target, []byte("<p></p>"), 0644))

	select {
	case path := <-changed:
		want, _ := filepath.Abs(target)
		assert.Equal(t, want, path)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change notification")
	}
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(target, []byte(""), 0644))

	changed := make(chan string, 10)
	w, err := New([]string{target}, func(_ context.Context, path string) {
		changed <- path
	}, WithDebounce(200*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(target, []byte{byte('a' + i)}, 0644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change notification")
	}

	select {
	case <-changed:
		t.Fatal("burst of writes should be reported once")
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcher_StopsOnContextCancel(t *testing.T) {
	target := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(target, nil, 0644))

	w, err := New([]string{target}, func(context.Context, string) {})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx))
	cancel()

	select {
	case <-w.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
	w.Stop()
}

func TestWatcher_StopWithoutStart(t *testing.T) {
	w, err := New([]string{"page.html"}, func(context.Context, string) {})
	require.NoError(t, err)

	w.Stop()
	w.Stop()
}
