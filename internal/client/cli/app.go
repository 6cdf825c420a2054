package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/worklog/internal/client/client"
	"github.com/dmitrijs2005/worklog/internal/client/config"
	"github.com/dmitrijs2005/worklog/internal/client/services"
)

// getSimpleText, getWithDefault and getPassword are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText  = GetSimpleText
	getWithDefault = GetWithDefault
	getPassword    = GetPassword
)

type App struct {
	config        *config.Config
	api           client.Client
	authService   services.AuthService
	exportService services.ExportService
	reader        *bufio.Reader
	out           io.Writer
}

func NewApp(c *config.Config) (*App, error) {

	apiClient, err := client.NewRESTClient(c.ServerURL, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	return newApp(c, apiClient, bufio.NewReader(os.Stdin), os.Stdout), nil
}

func newApp(c *config.Config, api client.Client, reader *bufio.Reader, out io.Writer) *App {
	return &App{
		config:        c,
		api:           api,
		authService:   services.NewAuthService(api),
		exportService: services.NewExportService(api, c.ReportsDir),
		reader:        reader,
		out:           out,
	}
}

// Run checks the server, then blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to worklog CLI (type 'help' for commands)")

	if err := a.authService.Ping(ctx); err != nil {
		fmt.Fprintf(a.out, "warning: %s is not reachable: %v\n", a.config.ServerURL, err)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	_, ok := a.authService.Current()
	return ok
}

func (a *App) isAdmin() bool {
	id, ok := a.authService.Current()
	return ok && id.IsAdmin()
}

func (a *App) getStatus() string {
	id, ok := a.authService.Current()
	if !ok {
		return ""
	}
	return fmt.Sprintf("(%s %s)", id.Username, id.Role)
}
