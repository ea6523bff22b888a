package bot

import (
	"leadbot_backend/internal/bot/dialogue"
	"leadbot_backend/internal/bot/domain"
	"leadbot_backend/internal/bot/session"
	apphttp "leadbot_backend/internal/http"
	"leadbot_backend/platform/logger"
	"leadbot_backend/platform/validator"
)

// Module is the conversational intake bounded context implementing http.Module.
type Module struct {
	handler *Handler
	engine  *dialogue.Engine
}

// NewModule creates and initializes the bot module with all its dependencies.
func NewModule(leadSvc dialogue.LeadService, rules domain.RuleSet, photoQuota int, val *validator.Validator, log *logger.Logger) *Module {
	engine := dialogue.New(session.NewStore(), leadSvc, rules, photoQuota, log)
	handler := NewHandler(engine, val, log)

	return &Module{
		handler: handler,
		engine:  engine,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "bot"
}

// RegisterRoutes mounts the webhook routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Engine.Group("/webhook")
	group.Use(ctx.WebhookLimiter.RateLimit())
	group.POST("/whatsapp", m.handler.HandleInbound)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
