// Package cli implements the interactive StepTrack client: a small REPL
// over the auth and step services, with a local cache database and an
// optional automatic step counter.
package cli

import (
	"bufio"
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/steptrack/internal/client/client"
	"github.com/dmitrijs2005/steptrack/internal/client/config"
	"github.com/dmitrijs2005/steptrack/internal/client/counter"
	"github.com/dmitrijs2005/steptrack/internal/client/models"
	"github.com/dmitrijs2005/steptrack/internal/client/repositories/cache"
	"github.com/dmitrijs2005/steptrack/internal/client/services"
	"github.com/dmitrijs2005/steptrack/internal/logging"
)

type App struct {
	config      *config.Config
	authService services.AuthService
	stepService services.StepService
	counter     *counter.Counter
	user        *models.User
	reader      *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	apiClient := client.NewHTTPClient(c.ServerAddr, c.RequestTimeout)
	session := services.NewSessionStore(db)

	as := services.NewAuthService(apiClient, session)
	ss := services.NewStepService(apiClient, session, cache.NewSQLiteRepository(db), logger)
	ctr := counter.NewCounter(ss, c.AutoFlushInterval, logger)

	app := &App{
		config:      c,
		authService: as,
		stepService: ss,
		counter:     ctr,
		reader:      bufio.NewReader(os.Stdin),
	}

	// Pick up the session a previous run left behind.
	if _, user, err := as.Restore(ctx); err == nil && user != nil {
		app.user = user
		log.Printf("Welcome back, %s!", user.Name)
	}

	return app, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.authService.Close(ctx)
	defer a.stopCounterIfRunning()

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

func (a *App) status() string {
	if !a.isLoggedIn() {
		return "not logged in"
	}
	if a.counter.State() == counter.Counting {
		return a.user.Name + " [counting]"
	}
	return a.user.Name
}

func (a *App) stopCounterIfRunning() {
	if a.counter.State() == counter.Counting {
		_ = a.counter.Stop()
	}
}

// newStepSource returns the delta source for the automatic counter. The CLI
// has no pedometer, so it simulates one.
func (a *App) newStepSource() counter.Source {
	return counter.NewSimulatedSource(time.Second, 30)
}
