package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/fintrack/internal/client/api"
	"github.com/dmitrijs2005/fintrack/internal/client/config"
	"github.com/dmitrijs2005/fintrack/internal/client/credentials"
	"github.com/dmitrijs2005/fintrack/internal/client/dashboard"
	"github.com/dmitrijs2005/fintrack/internal/client/models"
	"github.com/dmitrijs2005/fintrack/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/fintrack/internal/client/router"
	"github.com/dmitrijs2005/fintrack/internal/client/session"
	"github.com/dmitrijs2005/fintrack/internal/client/storage"
	"github.com/dmitrijs2005/fintrack/internal/logging"
)

// sessionIface is the part of *session.Session the commands use.
type sessionIface interface {
	IsAuthenticated(ctx context.Context) bool
	User() *models.User
	Login(ctx context.Context, username, password string, rememberMe bool) (*models.User, error)
	FetchProfile(ctx context.Context) (*models.User, error)
	Logout(ctx context.Context)
	Err() error
	ResetError()
	Register(ctx context.Context, in models.UserRegister) error
	UpdateProfile(ctx context.Context, in models.UserUpdateMe) (*models.User, error)
	ChangePassword(ctx context.Context, current, next string) (bool, error)
	DeleteAccount(ctx context.Context) error
}

// tokenVerifier asks the backend whether the stored token is still good.
type tokenVerifier interface {
	TestToken(ctx context.Context) (*models.User, error)
}

// dashboardIface is the part of *dashboard.Aggregator the commands use.
type dashboardIface interface {
	Select(ctx context.Context, year, month int) uint64
	Wait()
	Stats() dashboard.Stats
	Currency() string
}

type App struct {
	config   *config.Config
	session  sessionIface
	router   *router.Router
	dash     dashboardIface
	lister   dashboard.Fetcher
	verifier tokenVerifier
	tokens   func(ctx context.Context) (string, bool)
	reader   *bufio.Reader
	out      io.Writer
	log      logging.Logger
	now      func() time.Time
	closeFns []func() error
}

// NewApp opens the local database (sqlite store only), builds the credential
// store, API client, session, router and dashboard, and starts restoring a
// stored session.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	log = logging.Component(log, logging.ComponentCLI)

	var (
		durable credentials.Tier
		db      *sql.DB
	)
	switch c.DurableStore {
	case config.StoreKeyring:
		durable = credentials.NewKeyringTier(c.KeyringService)
	default:
		var err error
		db, err = storage.Open(ctx, c.DatabasePath, log)
		if err != nil {
			log.Error(ctx, "error initializing database", logging.FieldError, err)
			return nil, err
		}
		durable = credentials.NewMetadataTier(metadata.NewSQLiteRepository(db))
	}
	store := credentials.NewStore(durable, credentials.NewMemoryTier(), log)

	apiClient, err := api.New(c.APIBaseURL, store.Token,
		api.WithTimeout(c.RequestTimeout),
		api.WithRateLimit(c.RequestsPerSecond, 1),
		api.WithRetries(uint64(max(c.Retries, 0))),
		api.WithLogger(log),
	)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, err
	}

	rt, err := router.NewRouter(router.DefaultRoutes(), router.WithLogger(log))
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, err
	}

	sess := session.New(ctx, apiClient, store,
		session.WithLogger(log),
		session.WithPasswordPolicy(c.PasswordPolicy()),
	)
	agg := dashboard.NewAggregator(apiClient,
		dashboard.WithCurrency(c.Currency),
		dashboard.WithLogger(log),
	)

	a := &App{
		config:   c,
		session:  sess,
		router:   rt,
		dash:     agg,
		lister:   apiClient,
		verifier: apiClient,
		tokens:   store.Get,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		log:      log,
		now:      time.Now,
	}
	a.closeFns = append(a.closeFns, func() error {
		agg.Close()
		sess.Wait()
		return nil
	})
	if db != nil {
		a.closeFns = append(a.closeFns, db.Close)
	}
	return a, nil
}

// Close stops background work and releases the database.
func (a *App) Close() error {
	var first error
	for _, fn := range a.closeFns {
		if err := fn(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.session.IsAuthenticated(ctx)
}

// resetError forgets the previous command's failure.
func (a *App) resetError() {
	a.session.ResetError()
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// getStatus renders the prompt prefix: the user's name when known.
func (a *App) getStatus(ctx context.Context) string {
	if !a.isLoggedIn(ctx) {
		return "(guest)"
	}
	if u := a.session.User(); u != nil {
		return fmt.Sprintf("(%s)", u.DisplayName())
	}
	return "(logged in)"
}

// Root greets the user and runs the REPL on stdin.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to fintrack CLI (type 'help' for commands)")
	runREPL(ctx, a, func() string { return a.getStatus(ctx) }, a.reader)
}
