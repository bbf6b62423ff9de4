package common

// Re-exports of the mediator types so handlers can depend on common alone.

import (
	"github.com/andrescamacho/mercado-go/internal/application/mediator"
)

// Mediator types
type (
	Request        = mediator.Request
	Response       = mediator.Response
	RequestHandler = mediator.RequestHandler
	HandlerFunc    = mediator.HandlerFunc
	Middleware     = mediator.Middleware
	Mediator       = mediator.Mediator
)

// Mediator functions
var (
	NewMediator = mediator.NewMediator
)
