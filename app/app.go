package app

import (
	"context"
	"fmt"

	"github.com/kbukum/voicelist/api"
	"github.com/kbukum/voicelist/bootstrap"
	"github.com/kbukum/voicelist/extraction"
	"github.com/kbukum/voicelist/llm"
	"github.com/kbukum/voicelist/logger"
	"github.com/kbukum/voicelist/observability"
	"github.com/kbukum/voicelist/provider"
	"github.com/kbukum/voicelist/server"
	"github.com/kbukum/voicelist/storage"
	"github.com/kbukum/voicelist/transcription"
	"github.com/kbukum/voicelist/transcription/groq"
	"github.com/kbukum/voicelist/util"
)

// Service is the assembled application.
type Service struct {
	App         *bootstrap.App[*Config]
	Server      *server.Server
	Spool       *storage.Spool
	Transcriber transcription.Provider
	Extractors  *extraction.Registry
	Handler     *api.Handler
	Metrics     *observability.Metrics
}

// New builds the service from cfg: telemetry, providers, extractors, spool
// and HTTP server. Routes are mounted before the server starts.
func New(cfg *Config, opts ...bootstrap.Option) (*Service, error) {
	return build(cfg, true, opts)
}

// NewTask builds the service without the HTTP server, for one-shot runs
// through Handler.Process.
func NewTask(cfg *Config, opts ...bootstrap.Option) (*Service, error) {
	return build(cfg, false, opts)
}

func build(cfg *Config, serve bool, opts []bootstrap.Option) (*Service, error) {
	a, err := bootstrap.NewApp(cfg, opts...)
	if err != nil {
		return nil, err
	}
	s := &Service{App: a}

	if err := s.initTelemetry(); err != nil {
		return nil, err
	}

	metrics, err := observability.NewMetrics(observability.Meter(cfg.Name))
	if err != nil {
		return nil, fmt.Errorf("create metrics: %w", err)
	}
	s.Metrics = metrics

	if err := s.initProviders(); err != nil {
		return nil, err
	}

	s.Spool = storage.NewSpool(cfg.Storage, a.Logger)
	s.Handler = api.NewHandler(s.Transcriber, s.Extractors, s.Spool, metrics, a.Logger)

	if err := a.RegisterComponent(s.Spool); err != nil {
		return nil, err
	}
	if serve {
		s.Server = server.New(cfg.Server, a.Logger)
		s.Server.ApplyDefaults(cfg.Name, a.Components.HealthAll, metrics)
		s.Handler.Register(s.Server.GinEngine())
		if err := a.RegisterComponent(server.NewComponent(s.Server)); err != nil {
			return nil, err
		}
	}

	a.OnConfigure(s.reportProviders)
	return s, nil
}

// Run serves until SIGINT/SIGTERM or ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	return s.App.Run(ctx)
}

func (s *Service) initTelemetry() error {
	cfg := s.App.Cfg
	res := observability.Resource{
		ServiceName:    cfg.Name,
		ServiceVersion: cfg.Version,
		Environment:    cfg.Environment,
	}
	ctx := context.Background()

	if cfg.Observability.TracingEnabled {
		tp, err := observability.InitTracer(ctx, cfg.Observability, res)
		if err != nil {
			return fmt.Errorf("init tracer: %w", err)
		}
		s.App.OnStop(tp.Shutdown)
	}
	if cfg.Observability.MetricsEnabled {
		mp, err := observability.InitMeter(ctx, cfg.Observability, res)
		if err != nil {
			return fmt.Errorf("init meter: %w", err)
		}
		s.App.OnStop(mp.Shutdown)
	}
	return nil
}

func (s *Service) initProviders() error {
	cfg := s.App.Cfg
	log := s.App.Logger.WithComponent("providers")

	stt, err := groq.NewProvider(cfg.Groq)
	if err != nil {
		return err
	}
	s.Transcriber = transcription.WithMiddleware(stt,
		provider.WithLogging[transcription.Request, *transcription.Response](log),
		provider.WithMetrics[transcription.Request, *transcription.Response](s.Metrics),
		provider.WithTracing[transcription.Request, *transcription.Response](cfg.Name),
	)

	s.Extractors = extraction.NewRegistry(extraction.Mode(cfg.Extraction.Default))
	s.Extractors.Register(extraction.NewHeuristic())

	if cfg.Gemini.APIKey == "" {
		return nil
	}
	adapter, err := llm.New(cfg.Gemini)
	if err != nil {
		return fmt.Errorf("create llm adapter: %w", err)
	}
	s.Extractors.Register(extraction.NewLLM(adapter.AsProvider(log, s.Metrics, cfg.Name), s.App.Logger))
	return nil
}

func (s *Service) reportProviders(ctx context.Context, a *bootstrap.App[*Config]) error {
	cfg := a.Cfg
	log := a.Logger.WithComponent("providers")

	if s.Transcriber.IsAvailable(ctx) {
		log.Info("Transcription provider configured", logger.Fields(
			logger.FieldProvider, s.Transcriber.Name(),
			"model", cfg.Groq.Model,
			"api_key", util.MaskSecret(cfg.Groq.APIKey, 4),
		))
	} else {
		log.Warn("GROQ_API_KEY is not set; transcription requests will fail", logger.Fields(
			logger.FieldProvider, s.Transcriber.Name(),
		))
	}

	if cfg.Gemini.APIKey == "" {
		log.Info("GEMINI_API_KEY is not set; llm extractor disabled")
	}
	log.Info("Extractors registered", logger.Fields(
		"modes", s.Extractors.Modes(),
		"default", string(s.Extractors.Default()),
	))
	return nil
}
