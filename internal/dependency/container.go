// Package dependency wires core ledgermate services using go.uber.org/dig.
package dependency

import (
	"context"
	"fmt"

	"go.uber.org/dig"

	"github.com/ledgermate/ledgermate/internal/assistant"
	"github.com/ledgermate/ledgermate/internal/bus"
	"github.com/ledgermate/ledgermate/internal/config"
	"github.com/ledgermate/ledgermate/internal/orchestrator"
	"github.com/ledgermate/ledgermate/internal/providers"
	"github.com/ledgermate/ledgermate/internal/rates"
	"github.com/ledgermate/ledgermate/internal/schema"
	"github.com/ledgermate/ledgermate/internal/session"
	"github.com/ledgermate/ledgermate/internal/store"
	"github.com/ledgermate/ledgermate/internal/tools"
)

// Container holds the resolved core service singletons.
// Callers use the typed getter methods; they never need to import dig directly.
type Container struct {
	provider  schema.LLMProvider
	msgBus    *bus.MessageBus
	db        *store.DB
	engine    *orchestrator.Orchestrator
	assistant *assistant.Service
	rates     *rates.Service
	sessions  *session.Manager
}

func (c *Container) Provider() schema.LLMProvider            { return c.provider }
func (c *Container) MessageBus() *bus.MessageBus             { return c.msgBus }
func (c *Container) DB() *store.DB                           { return c.db }
func (c *Container) Orchestrator() *orchestrator.Orchestrator { return c.engine }
func (c *Container) Assistant() *assistant.Service           { return c.assistant }
func (c *Container) Rates() *rates.Service                   { return c.rates }
func (c *Container) Sessions() *session.Manager              { return c.sessions }

// Close releases held resources, currently only the database.
func (c *Container) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// New builds and wires all core services from cfg.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	d := dig.New()

	for _, provide := range []any{
		func() context.Context { return ctx },
		func() *config.Config { return cfg },
		newProvider,
		newMessageBus,
		newDB,
		newLedgerRegistry,
		newContextAssembler,
		newOrchestrator,
		newSessionManager,
		newRatesService,
		newAssistant,
	} {
		if err := d.Provide(provide); err != nil {
			return nil, err
		}
	}

	var result *Container
	err := d.Invoke(func(
		provider schema.LLMProvider,
		msgBus *bus.MessageBus,
		db *store.DB,
		engine *orchestrator.Orchestrator,
		svc *assistant.Service,
		rs *rates.Service,
		sessions *session.Manager,
	) {
		result = &Container{
			provider:  provider,
			msgBus:    msgBus,
			db:        db,
			engine:    engine,
			assistant: svc,
			rates:     rs,
			sessions:  sessions,
		}
	})
	return result, err
}

func newProvider(cfg *config.Config) (schema.LLMProvider, error) {
	if cfg.Provider.APIKey == "" {
		return nil, fmt.Errorf("no API key configured — edit %s", config.ConfigPath())
	}
	return providers.NewOpenAIProvider(cfg.Provider.APIKey, cfg.Provider.APIBase, cfg.Provider.Model), nil
}

func newMessageBus() *bus.MessageBus {
	return bus.NewMessageBus(100)
}

func newDB(ctx context.Context, cfg *config.Config) (*store.DB, error) {
	return store.Open(ctx, cfg.LedgerDBPath())
}

func newLedgerRegistry(db *store.DB) *tools.Registry {
	return tools.NewLedgerRegistry(db)
}

func newContextAssembler(db *store.DB) *orchestrator.ContextAssembler {
	return orchestrator.NewContextAssembler(db)
}

func newOrchestrator(p schema.LLMProvider, reg *tools.Registry, ca *orchestrator.ContextAssembler, cfg *config.Config) *orchestrator.Orchestrator {
	settings := schema.NewOrchestratorSettings(
		cfg.Provider.Model,
		cfg.Orchestrator.MaxRounds,
		cfg.Orchestrator.HistoryWindow,
		cfg.Orchestrator.MaxTokens,
		cfg.Orchestrator.Temperature,
	)
	return orchestrator.New(p, reg, ca, settings)
}

func newSessionManager(cfg *config.Config) (*session.Manager, error) {
	return session.NewManager(cfg.Workspace)
}

func newRatesService(cfg *config.Config) *rates.Service {
	return rates.NewService(cfg.Rates.URL, cfg.Rates.BaseCurrency, cfg.Rates.RefreshSpec)
}

func newAssistant(b *bus.MessageBus, engine *orchestrator.Orchestrator, sessions *session.Manager, rs *rates.Service) *assistant.Service {
	return assistant.NewService(b, engine, sessions, rs)
}
