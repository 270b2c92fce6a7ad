package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aussiebroadwan/devconnect/pkg/authsdk"
	"github.com/aussiebroadwan/devconnect/pkg/route"
	"github.com/aussiebroadwan/devconnect/pkg/session"
)

// App is the terminal client. Each running process is one "tab" onto the
// state directory it shares with other processes.
type App struct {
	store  *session.Store
	sync   *session.CrossTabSync
	guard  route.Guard
	routes route.Table
	logger *slog.Logger

	reader *bufio.Reader
	out    io.Writer
}

// NewApp wires the SDK client, file slot, session store and cross-tab sync.
func NewApp(cfg Config, logger *slog.Logger) (*App, error) {
	slot, err := session.NewFileSlot(cfg.StateDir, logger)
	if err != nil {
		return nil, err
	}

	store := session.NewStore(authsdk.NewSDKClient(cfg.APIURL), slot, logger)
	return newApp(store, session.NewCrossTabSync(store, slot), bufio.NewReader(os.Stdin), os.Stdout, logger), nil
}

func newApp(store *session.Store, sync *session.CrossTabSync, reader *bufio.Reader, out io.Writer, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		store:  store,
		sync:   sync,
		guard:  route.Guard{LoginPath: route.DefaultLoginPath},
		routes: route.DevConnect,
		logger: logger,
		reader: reader,
		out:    out,
	}
}

// Run follows logouts from other processes, restores any stored session
// and serves the REPL until EOF or quit. Sync starts first so a logout
// elsewhere during Bootstrap still wins.
func (app *App) Run(ctx context.Context) error {
	if err := app.sync.Start(); err != nil {
		return fmt.Errorf("start cross-tab sync: %w", err)
	}
	defer app.sync.Stop()

	if err := app.store.Bootstrap(ctx); err != nil {
		app.logger.Debug("bootstrap ended unauthenticated", "err", err)
	}

	unsubscribe := app.store.Subscribe(func(st session.State) {
		app.logger.Debug("session state changed", "status", st.Status.String())
	})
	defer unsubscribe()

	runREPL(ctx, app, app.status, app.reader, app.out)
	return nil
}

func (app *App) status() string {
	st := app.store.Snapshot()
	if st.Authenticated() {
		return st.Account.Email
	}
	return st.Status.String()
}

func (app *App) isLoggedIn() bool { return app.store.Snapshot().Authenticated() }

func (app *App) Register(ctx context.Context) error {
	name, err := getLine(app.reader, "Name", app.out)
	if err != nil {
		return err
	}
	email, err := getLine(app.reader, "Email", app.out)
	if err != nil {
		return err
	}
	password, err := getPassword(app.out)
	if err != nil {
		return err
	}

	return app.report(app.store.RegisterWith(ctx, name, email, password))
}

func (app *App) Login(ctx context.Context) error {
	email, err := getLine(app.reader, "Email", app.out)
	if err != nil {
		return err
	}
	password, err := getPassword(app.out)
	if err != nil {
		return err
	}

	return app.report(app.store.LoginWith(ctx, email, password))
}

func (app *App) Logout(ctx context.Context) error {
	app.store.Logout()
	fmt.Fprintln(app.out, "Logged out.")
	return nil
}

func (app *App) WhoAmI(ctx context.Context) error {
	st := app.store.Snapshot()
	if !st.Authenticated() {
		fmt.Fprintln(app.out, "Not logged in.")
		return nil
	}
	fmt.Fprintf(app.out, "%s <%s>\n%s\n", st.Account.Name, st.Account.Email, st.Account.Avatar)
	return nil
}

// Open runs the route guard for path and prints what a browser would show.
func (app *App) Open(ctx context.Context, path string) error {
	r, params, ok := app.routes.Match(path)
	if !ok {
		fmt.Fprintf(app.out, "404 %s\n", path)
		return nil
	}

	d := app.guard.Resolve(r, app.store.Snapshot())
	switch d.Action {
	case route.RenderView:
		if id, ok := params["id"]; ok {
			fmt.Fprintf(app.out, "[%s %s]\n", d.View, id)
		} else {
			fmt.Fprintf(app.out, "[%s]\n", d.View)
		}
	case route.Redirect:
		fmt.Fprintf(app.out, "-> %s\n", d.RedirectTo)
	case route.RenderNothing:
		fmt.Fprintln(app.out, "...")
	}
	return nil
}

// report prints the outcome of a login or registration.
func (app *App) report(err error) error {
	st := app.store.Snapshot()
	switch {
	case err == nil:
		fmt.Fprintf(app.out, "Welcome, %s.\n", st.Account.Name)
	case errors.Is(err, session.ErrSuperseded):
		fmt.Fprintln(app.out, "Cancelled.")
	default:
		for _, m := range st.Errors {
			fmt.Fprintln(app.out, "error:", m.Msg)
		}
	}
	return err
}
