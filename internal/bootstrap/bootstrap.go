package bootstrap

import (
	"context"
	"fmt"

	"voice-server/internal/calendar"
	"voice-server/internal/clients/calcom"
	"voice-server/internal/clients/elevenlabs"
	"voice-server/internal/clients/googleai"
	"voice-server/internal/clients/mail"
	"voice-server/internal/clients/openai"
	redisClient "voice-server/internal/clients/redis"
	twilioClient "voice-server/internal/clients/twilio"
	"voice-server/internal/config"
	conversationProcessor "voice-server/internal/conversation/processor"
	"voice-server/internal/conversation/session"
	"voice-server/internal/functions"
	"voice-server/internal/llm"
	"voice-server/internal/observability"
	"voice-server/internal/speech"
	speechHandler "voice-server/internal/speech/handler"
	"voice-server/internal/store"
	telephonyHandler "voice-server/internal/telephony/handler"
)

// Dependencies holds all initialized application dependencies
type Dependencies struct {
	// Core
	Store    store.Store
	Logger   *observability.Logger
	Sessions *session.Store

	// Handlers
	TelephonyHandler telephonyHandler.Handler
	SpeechHandler    *speechHandler.Handler

	// Processors
	Conversation *conversationProcessor.Processor

	// Clients needing cleanup
	Redis *redisClient.Client

	conversationCfg config.ConversationConfig
}

// Initialize sets up all application dependencies
func Initialize(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Logger: logger,
	}

	// Database store
	var err error
	deps.Store, err = store.New(cfg.Database.ConnectionString(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// LLM providers; at least one key must be configured
	var providers []llm.Provider
	if cfg.Services.OpenAIAPIKey != "" {
		providers = append(providers, openai.NewClient(cfg.Services.OpenAIAPIKey, logger))
	}
	if cfg.Services.GoogleAIAPIKey != "" {
		providers = append(providers, googleai.NewClient(cfg.Services.GoogleAIAPIKey, logger))
	}
	gateway, err := llm.NewGateway(cfg.Conversation.LLMTimeout, cfg.Conversation.LLMHistoryWindow, logger, providers...)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble llm gateway: %w", err)
	}

	// Availability cache: shared Redis when configured, process-local otherwise
	deps.Redis, err = redisClient.NewClient(cfg.Redis, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	var availabilityCache calendar.AvailabilityCache
	if deps.Redis.IsEnabled() {
		availabilityCache = calendar.NewRedisCache(deps.Redis, cfg.Conversation.AvailabilityTTL, logger)
	} else {
		availabilityCache = calendar.NewMemoryCache(cfg.Conversation.AvailabilityTTL)
	}

	// Calendar chain: external booking provider first, internal slot store last
	calcomClient := calcom.NewClient(cfg.Services.CalComAPIKey, cfg.Services.CalComBaseURL, logger)
	chain := calendar.NewChain(
		availabilityCache,
		logger,
		calendar.NewExternalProvider(calcomClient, logger),
		calendar.NewInternalProvider(deps.Store, logger),
	)

	// Outbound messaging clients
	smsClient := twilioClient.NewClient(
		cfg.Services.TwilioAccountSID,
		cfg.Services.TwilioAuthToken,
		cfg.Services.TwilioFromNumber,
		logger,
	)
	var notifier functions.BookingNotifier
	if cfg.Services.ResendAPIKey != "" {
		mailClient, err := mail.NewResendClient(cfg.Services.ResendAPIKey, cfg.Services.BookingEmailFrom, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create resend client: %w", err)
		}
		notifier = mailClient
	}

	// Function registry: built-ins plus user-registered HTTP functions
	registry := functions.NewRegistry()
	registry.RegisterBuiltin(functions.NewCheckAvailability(chain, cfg.Conversation.FunctionTimeout, cfg.Conversation.FunctionRetries))
	registry.RegisterBuiltin(functions.NewBookAppointment(chain, notifier, cfg.Conversation.FunctionTimeout, logger))
	registry.RegisterBuiltin(functions.NewSendSMS(smsClient, cfg.Conversation.FunctionTimeout))
	registry.RegisterBuiltin(functions.NewGetCurrentTime())
	registry.RegisterBuiltin(functions.NewFormatDate())
	registry.RegisterBuiltin(functions.NewEndCall())

	dynamicConfigs, err := deps.Store.GetActiveFunctionConfigs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dynamic function configs: %w", err)
	}
	for _, dynamicConfig := range dynamicConfigs {
		registry.RegisterDynamic(functions.NewDynamicFunction(dynamicConfig, logger))
	}

	executor := functions.NewExecutor(
		registry,
		cfg.Conversation.FunctionTimeout,
		cfg.Conversation.FunctionRetries,
		cfg.Conversation.FunctionBackoff,
		logger,
	)

	// Speech delivery
	signer := speech.NewURLSigner(cfg.Services.AudioURLSecret, cfg.Services.PublicBaseURL, cfg.Conversation.AudioURLTTL)
	speechProcessor := speech.NewProcessor(
		elevenlabs.NewClient(cfg.Services.ElevenLabsAPIKey, logger),
		signer,
		cfg.Conversation.SpeechCacheTTL,
		cfg.Conversation.SpeechCacheMaxItems,
		logger,
	)
	deps.SpeechHandler = speechHandler.NewHandler(speechProcessor, logger)

	// Conversation core
	deps.Sessions = session.NewStore(cfg.Conversation.SessionTTL, logger)
	deps.Conversation = conversationProcessor.NewProcessor(
		deps.Sessions,
		deps.Store,
		gateway,
		executor,
		registry,
		cfg.Conversation.ConfidenceFloor,
		cfg.Conversation.CleanupGrace,
		logger,
	)
	deps.TelephonyHandler = telephonyHandler.New(deps.Conversation, speechProcessor, logger)

	deps.conversationCfg = cfg.Conversation
	return deps, nil
}

// StartBackground launches the session reaper.
func (d *Dependencies) StartBackground() {
	d.Sessions.StartReaper(d.conversationCfg.ReaperInterval)
}

// Cleanup closes all resources that need cleanup
func (d *Dependencies) Cleanup() {
	d.Sessions.Stop()
	if err := d.Redis.Close(); err != nil {
		d.Logger.Error(context.Background(), "failed to close redis client", err)
	}
}
