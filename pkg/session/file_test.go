package session_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/devconnect/pkg/session"
	"github.com/aussiebroadwan/devconnect/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestFileSlotRoundTrip(t *testing.T) {
	slot, err := session.NewFileSlot(filepath.Join(t.TempDir(), "state"), slogx.Discard())
	require.NoError(t, err)

	token, err := slot.Load()
	require.NoError(t, err)
	require.Empty(t, token)

	require.NoError(t, slot.Save("tok-1"))
	token, err = slot.Load()
	require.NoError(t, err)
	require.Equal(t, "tok-1", token)

	require.NoError(t, slot.Clear())
	require.NoError(t, slot.Clear(), "clearing an empty slot is fine")

	token, err = slot.Load()
	require.NoError(t, err)
	require.Empty(t, token)
}

func TestFileSlotWatchSeesOtherProcess(t *testing.T) {
	dir := t.TempDir()

	mine, err := session.NewFileSlot(dir, slogx.Discard())
	require.NoError(t, err)
	theirs, err := session.NewFileSlot(dir, slogx.Discard())
	require.NoError(t, err)

	seen := make(chan string, 8)
	stop, err := mine.Watch(func(token string) { seen <- token })
	require.NoError(t, err)
	t.Cleanup(stop)

	require.NoError(t, theirs.Save("tok-1"))
	requireSeen(t, seen, "tok-1")

	require.NoError(t, theirs.Clear())
	requireSeen(t, seen, "")
}

func TestFileSlotWatchSkipsOwnWrites(t *testing.T) {
	dir := t.TempDir()

	mine, err := session.NewFileSlot(dir, slogx.Discard())
	require.NoError(t, err)
	theirs, err := session.NewFileSlot(dir, slogx.Discard())
	require.NoError(t, err)

	seen := make(chan string, 8)
	stop, err := mine.Watch(func(token string) { seen <- token })
	require.NoError(t, err)
	t.Cleanup(stop)

	// A local logout followed by a quick login must not echo back.
	require.NoError(t, mine.Save("tok-1"))
	require.NoError(t, mine.Clear())
	require.NoError(t, mine.Save("tok-2"))

	select {
	case tok := <-seen:
		t.Fatalf("own write reported as %q", tok)
	case <-time.After(300 * time.Millisecond):
	}

	require.NoError(t, theirs.Clear())
	requireSeen(t, seen, "")
}

func TestFileSlotIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	slot, err := session.NewFileSlot(dir, slogx.Discard())
	require.NoError(t, err)

	seen := make(chan string, 8)
	stop, err := slot.Watch(func(token string) { seen <- token })
	require.NoError(t, err)
	t.Cleanup(stop)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other"), []byte("x"), 0o600))

	select {
	case tok := <-seen:
		t.Fatalf("unexpected notification %q", tok)
	case <-time.After(200 * time.Millisecond):
	}
}

func requireSeen(t *testing.T, seen <-chan string, want string) {
	t.Helper()

	deadline := time.After(5 * time.Second)
	for {
		select {
		case got := <-seen:
			if got == want {
				return
			}
		case <-deadline:
			t.Fatalf("never saw token %q", want)
		}
	}
}
