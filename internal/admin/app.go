package admin

import (
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/backend"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/alert"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/config"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/credentials"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/logging"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/notification"
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// App is the central entry point for all admin operations.
// Commands and TUI consume App instead of cherry-picking raw dependencies.
type App struct {
	Config     *config.Config
	Client     *backend.Client
	Board      *Board
	Dispatcher *Dispatcher
	Alerts     *alert.Bus
	Session    *credentials.FileStore
	Build      BuildInfo
}

// NewApp constructs an App from explicit dependencies. The backend client
// authenticates with token when non-empty, falling back to the stored
// session.
func NewApp(cfg *config.Config, session *credentials.FileStore, token string, build BuildInfo) *App {
	provider := credentials.Chain(credentials.Static(token), session)

	client := backend.New(
		cfg.Backend.BaseURL,
		provider,
		backend.WithTimeout(cfg.Backend.Timeout),
		backend.WithLogger(logging.Component("backend")),
	)

	board := NewBoard(cfg.Board.PageSize)
	if lane, err := notification.ParseLane(cfg.Board.DefaultLane); err == nil {
		board.SetLane(lane)
	}
	alerts := alert.NewBus()

	return &App{
		Config:     cfg,
		Client:     client,
		Board:      board,
		Dispatcher: NewDispatcher(client, board, alerts, logging.Component("dispatcher")),
		Alerts:     alerts,
		Session:    session,
		Build:      build,
	}
}
