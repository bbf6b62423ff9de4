package setup

import (
	"log/slog"
	"reflect"

	"github.com/andrescamacho/mercado-go/internal/application/common"
	gameCommands "github.com/andrescamacho/mercado-go/internal/application/game/commands"
	gameQueries "github.com/andrescamacho/mercado-go/internal/application/game/queries"
	"github.com/andrescamacho/mercado-go/internal/application/mediator"
	"github.com/andrescamacho/mercado-go/internal/domain/game"
	"github.com/andrescamacho/mercado-go/internal/domain/market"
	"github.com/andrescamacho/mercado-go/internal/domain/shared"
)

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	gameRepo   game.GameStateRepository
	catalogs   market.CatalogProvider
	clock      shared.Clock
	locker     *common.GameLocker
	settings   game.Settings
	roller     *game.EventRoller
	forecaster *game.Forecaster
	logger     *slog.Logger

	middlewares []mediator.Middleware
}

// NewHandlerRegistry creates a new handler registry with required dependencies
func NewHandlerRegistry(
	gameRepo game.GameStateRepository,
	catalogs market.CatalogProvider,
	clock shared.Clock,
	settings game.Settings,
	rng game.RandomSource,
	eventProbability float64,
	logger *slog.Logger,
) *HandlerRegistry {
	// Default to real clock if not provided
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &HandlerRegistry{
		gameRepo:   gameRepo,
		catalogs:   catalogs,
		clock:      clock,
		locker:     common.NewGameLocker(),
		settings:   settings,
		roller:     game.NewEventRoller(rng, eventProbability),
		forecaster: game.NewForecaster(rng),
		logger:     logger,
	}
}

// Use adds a middleware to every mediator the registry configures,
// after the logging middleware
func (r *HandlerRegistry) Use(middleware mediator.Middleware) {
	r.middlewares = append(r.middlewares, middleware)
}

// RegisterGameCommandHandlers registers the round lifecycle commands
//
// This method registers:
//   - InitNewGameCommand, UpdatePlayerDecisionsCommand
//   - BeginRoundCommand, ProcessRoundCommand, NextRoundCommand, FinishRoundCommand
//   - EndGameCommand, ClearGameCommand
func (r *HandlerRegistry) RegisterGameCommandHandlers(m mediator.Mediator) error {
	handlers := map[reflect.Type]mediator.RequestHandler{
		reflect.TypeOf(&gameCommands.InitNewGameCommand{}): gameCommands.NewInitNewGameHandler(
			r.gameRepo, r.catalogs, r.locker, r.clock, r.settings),
		reflect.TypeOf(&gameCommands.UpdatePlayerDecisionsCommand{}): gameCommands.NewUpdatePlayerDecisionsHandler(
			r.gameRepo, r.catalogs, r.locker, r.clock),
		reflect.TypeOf(&gameCommands.BeginRoundCommand{}): gameCommands.NewBeginRoundHandler(
			r.gameRepo, r.catalogs, r.locker, r.clock, r.roller),
		reflect.TypeOf(&gameCommands.ProcessRoundCommand{}): gameCommands.NewProcessRoundHandler(
			r.gameRepo, r.catalogs, r.locker, r.clock),
		reflect.TypeOf(&gameCommands.NextRoundCommand{}): gameCommands.NewNextRoundHandler(
			r.gameRepo, r.catalogs, r.locker, r.clock),
		reflect.TypeOf(&gameCommands.FinishRoundCommand{}): gameCommands.NewFinishRoundHandler(
			r.gameRepo, r.catalogs, r.locker, r.clock),
		reflect.TypeOf(&gameCommands.EndGameCommand{}): gameCommands.NewEndGameHandler(
			r.gameRepo, r.catalogs, r.locker, r.clock),
		reflect.TypeOf(&gameCommands.ClearGameCommand{}): gameCommands.NewClearGameHandler(
			r.gameRepo, r.locker),
	}
	return registerAll(m, handlers)
}

// RegisterGameQueryHandlers registers the read-only game queries
func (r *HandlerRegistry) RegisterGameQueryHandlers(m mediator.Mediator) error {
	handlers := map[reflect.Type]mediator.RequestHandler{
		reflect.TypeOf(&gameQueries.GetGameQuery{}):           gameQueries.NewGetGameHandler(r.gameRepo),
		reflect.TypeOf(&gameQueries.ListGamesQuery{}):         gameQueries.NewListGamesHandler(r.gameRepo),
		reflect.TypeOf(&gameQueries.ValidateDecisionsQuery{}): gameQueries.NewValidateDecisionsHandler(r.gameRepo, r.catalogs),
		reflect.TypeOf(&gameQueries.GetForecastQuery{}):       gameQueries.NewGetForecastHandler(r.gameRepo, r.catalogs, r.forecaster),
		reflect.TypeOf(&gameQueries.GetEffectsQuery{}):        gameQueries.NewGetEffectsHandler(r.gameRepo, r.catalogs),
	}
	return registerAll(m, handlers)
}

func registerAll(m mediator.Mediator, handlers map[reflect.Type]mediator.RequestHandler) error {
	for requestType, handler := range handlers {
		if err := m.Register(requestType, handler); err != nil {
			return err
		}
	}
	return nil
}

// CreateConfiguredMediator creates a new mediator with all game handlers registered
func (r *HandlerRegistry) CreateConfiguredMediator() (mediator.Mediator, error) {
	m := mediator.NewMediator()
	m.RegisterMiddleware(common.LoggingMiddleware(r.logger))
	for _, mw := range r.middlewares {
		m.RegisterMiddleware(mw)
	}

	if err := r.RegisterGameCommandHandlers(m); err != nil {
		return nil, err
	}
	if err := r.RegisterGameQueryHandlers(m); err != nil {
		return nil, err
	}

	return m, nil
}
