package bootstrap

import (
	"context"
	"time"

	"quotable_server/adapter/out/graph"
	"quotable_server/adapter/out/identity"
	"quotable_server/adapter/out/llm"
	"quotable_server/adapter/out/session"
	"quotable_server/config"
	"quotable_server/core/port/in"
	"quotable_server/core/port/out"
	"quotable_server/core/service/analysis"
	"quotable_server/core/service/auth"
	"quotable_server/core/service/crm"
	"quotable_server/core/service/email"
	"quotable_server/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// Dependencies holds every wired adapter and service. Ports are stored as
// interfaces so tests can swap implementations.
type Dependencies struct {
	Config *config.Config
	Redis  *redis.Client

	// Outbound adapters
	Sessions out.SessionStore
	Identity out.IdentityProvider
	Mail     out.MailProvider
	Analyzer out.IntentAnalyzer

	// Services
	AuthService     in.AuthService
	EmailService    in.EmailService
	AnalysisService in.AnalysisService
	CRMService      *crm.Service
}

// NewDependencies wires adapters and services from configuration. The
// returned cleanup closes any network clients it opened.
func NewDependencies(cfg *config.Config) (*Dependencies, func(), error) {
	deps := &Dependencies{Config: cfg}

	// Session store: Redis when configured, in-process otherwise. Both
	// satisfy the same port; the rest of the wiring is identical.
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		client := redis.NewClient(opt)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		deps.Redis = client
		deps.Sessions = session.NewRedisStore(client, time.Duration(cfg.SessionTTLHours)*time.Hour)
		logger.Info("[Bootstrap] Session store: redis")
	} else {
		deps.Sessions = session.NewMemoryStore()
		logger.Info("[Bootstrap] Session store: in-memory")
	}

	deps.Identity = identity.NewMicrosoft(identity.Config{
		ClientID:     cfg.MicrosoftClientID,
		ClientSecret: cfg.MicrosoftClientSecret,
		TenantID:     cfg.MicrosoftTenantID,
		RedirectURL:  cfg.MicrosoftRedirectURL,
		Scopes:       cfg.Scopes,
	})

	deps.Mail = graph.NewClient(graph.Config{
		BaseURL:     cfg.GraphBaseURL,
		MaxPageSize: cfg.MaxPageSize,
	})

	if cfg.OpenAIAPIKey != "" {
		deps.Analyzer = llm.NewClient(llm.ClientConfig{
			APIKey:      cfg.OpenAIAPIKey,
			Model:       cfg.LLMModel,
			MaxTokens:   cfg.LLMMaxTokens,
			Temperature: cfg.LLMTemperature,
			Timeout:     time.Duration(cfg.LLMTimeoutSec) * time.Second,
		})
	} else {
		// Analysis degrades to negative results rather than failing the
		// whole server when no key is configured.
		deps.Analyzer = llm.Unconfigured{}
		logger.Warn("[Bootstrap] OPENAI_API_KEY not set; email analysis disabled")
	}

	deps.AuthService = auth.NewService(deps.Identity, deps.Sessions, deps.Mail)
	deps.EmailService = email.NewService(deps.Sessions, deps.Mail)
	deps.AnalysisService = analysis.NewService(deps.EmailService, deps.Analyzer)
	deps.CRMService = crm.NewService()

	cleanup := func() {
		if deps.Redis != nil {
			if err := deps.Redis.Close(); err != nil {
				logger.WithError(err).Warn("[Bootstrap] Redis close failed")
			}
		}
	}

	return deps, cleanup, nil
}
