package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	paths []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	f.calls = append(f.calls, "register")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) WhoAmI(ctx context.Context) error {
	f.calls = append(f.calls, "whoami")
	return nil
}
func (f *fakeExec) Open(ctx context.Context, path string) error {
	f.calls = append(f.calls, "open")
	f.paths = append(f.paths, path)
	return nil
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	input := strings.Join([]string{
		"",
		"login",
		"whoami",
		"open /dashboard",
		"open",
		"logout",
		"register",
		"bogus",
		"quit",
		"whoami",
	}, "\n") + "\n"

	f := &fakeExec{}
	var out bytes.Buffer
	runREPL(context.Background(), f, func() string { return "test" }, bufio.NewReader(strings.NewReader(input)), &out)

	require.Equal(t, []string{"login", "whoami", "open", "logout", "register"}, f.calls)
	require.Equal(t, []string{"/dashboard"}, f.paths)
	require.Contains(t, out.String(), "usage: open <path>")
	require.Contains(t, out.String(), "Unknown command: bogus")
	require.Contains(t, out.String(), "Bye!")
	require.Contains(t, out.String(), "devconnect [test]> ")
}

func TestRunREPL_HelpDependsOnLogin(t *testing.T) {
	var out bytes.Buffer
	f := &fakeExec{}
	runREPL(context.Background(), f, func() string { return "" }, bufio.NewReader(strings.NewReader("help\nlogin\nhelp\nexit\n")), &out)

	require.Contains(t, out.String(), "Available commands: register, login, open <path>, quit")
	require.Contains(t, out.String(), "Available commands: whoami, open <path>, logout, quit")
}

func TestRunREPL_StopsAtEOF(t *testing.T) {
	f := &fakeExec{}
	var out bytes.Buffer
	runREPL(context.Background(), f, func() string { return "" }, bufio.NewReader(strings.NewReader("whoami")), &out)

	require.Equal(t, []string{"whoami"}, f.calls)
}
