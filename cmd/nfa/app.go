package main

import (
	"fmt"
	"net/url"
	"os"

	"github.com/rs/zerolog"

	"github.com/nfa-dashboard/go-dashboard-client/api"
	"github.com/nfa-dashboard/go-dashboard-client/credentials"
	"github.com/nfa-dashboard/go-dashboard-client/credentials/filestore"
	"github.com/nfa-dashboard/go-dashboard-client/credentials/keyringstore"
	"github.com/nfa-dashboard/go-dashboard-client/guard"
	"github.com/nfa-dashboard/go-dashboard-client/internal/config"
	"github.com/nfa-dashboard/go-dashboard-client/session"
	"github.com/nfa-dashboard/go-dashboard-client/transport"
)

// app wires the full client stack: store -> keeper -> transport -> api ->
// session -> guard, sharing one Keeper between transport and session.
type app struct {
	cfg     config.Config
	log     zerolog.Logger
	nav     *pathNavigator
	keeper  *credentials.Keeper
	api     *api.Client
	session *session.Controller
	guard   *guard.Guard
}

func newApp() (*app, error) {
	cfg := config.New()

	level, err := zerolog.ParseLevel(cfg.GetLogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	store, err := newStore(cfg)
	if err != nil {
		return nil, err
	}
	keeper := credentials.NewKeeper(store)
	nav := &pathNavigator{current: "/", log: logger}

	tc, err := transport.New(cfg, keeper, nav, transport.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	apiClient, err := api.New(tc)
	if err != nil {
		return nil, err
	}
	sess, err := session.NewController(keeper, apiClient.Auth, nav, session.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	g := guard.New(guard.DefaultRoutes(), sess,
		guard.WithGuardLogger(logger),
		guard.WithTitleSetter(func(title string) {
			// Terminal title, same role as document.title in the browser.
			fmt.Fprintf(os.Stderr, "\033]0;%s - %s\007", title, cfg.GetAppName())
		}),
	)

	return &app{
		cfg:     cfg,
		log:     logger,
		nav:     nav,
		keeper:  keeper,
		api:     apiClient,
		session: sess,
		guard:   g,
	}, nil
}

func newStore(cfg config.StorageConfig) (credentials.Store, error) {
	switch backend := cfg.GetStorageBackend(); backend {
	case "file":
		return filestore.New(cfg.GetCredentialsFile()), nil
	case "keyring":
		return keyringstore.New(cfg.GetKeyringService()), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// pathNavigator models the dashboard's location as a current path. The
// guard and the transport interceptor redirect through it.
type pathNavigator struct {
	current string
	log     zerolog.Logger
}

func (n *pathNavigator) CurrentPath() string {
	return n.current
}

func (n *pathNavigator) Navigate(path string, query url.Values) error {
	target := path
	if len(query) > 0 {
		target = path + "?" + query.Encode()
	}
	n.log.Debug().Str("from", n.current).Str("to", target).Msg("navigate")
	n.current = target
	return nil
}
