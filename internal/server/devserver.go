package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/marquee/internal/shared"
)

// DevServer bundles the router and the in-memory API behind it.
type DevServer struct {
	*http.Server
	API    *DevAPI
	Router *ChiRouter
}

// NewDevServer builds the devapi server from cfg.
func NewDevServer(cfg shared.ServerConfig, logger *log.Logger) (*DevServer, error) {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	logger = shared.WithLogger(logger, "component", "devapi")

	movies, err := LoadFixtureMovies()
	if err != nil {
		return nil, err
	}

	api := NewDevAPI(NewTokenService(cfg.JWTSecret, cfg.TokenTTL()), logger)

	router := NewChiRouter()
	router.Use(RequestID(), RequestLogger(logger), Recoverer(), CORS())
	api.Register(router)
	router.Handler(NewMoviesHandler(movies, 0))

	return &DevServer{
		Server: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      router,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		API:    api,
		Router: router,
	}, nil
}
