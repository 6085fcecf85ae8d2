package app

import (
	"context"
	"fmt"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/AzizovM-doder/Rent-A-Room/internal/adapter/api"
	"github.com/AzizovM-doder/Rent-A-Room/internal/adapter/email"
	natsadapter "github.com/AzizovM-doder/Rent-A-Room/internal/adapter/messaging/nats"
	"github.com/AzizovM-doder/Rent-A-Room/internal/adapter/messaging/telegram"
	"github.com/AzizovM-doder/Rent-A-Room/internal/adapter/storage"
	"github.com/AzizovM-doder/Rent-A-Room/internal/app/config"
	"github.com/AzizovM-doder/Rent-A-Room/internal/listing/engine"
	"github.com/AzizovM-doder/Rent-A-Room/internal/listing/store"
	"github.com/AzizovM-doder/Rent-A-Room/internal/listing/usecase"
	"github.com/AzizovM-doder/Rent-A-Room/internal/notify"
	"github.com/AzizovM-doder/Rent-A-Room/internal/platform/logger"
	"github.com/AzizovM-doder/Rent-A-Room/internal/platform/tracer"
)

// App wires the client core together: config → logger → local storage → API →
// store → browsing state → flows.
type App struct {
	Cfg        *config.Config
	Log        logger.Logger
	API        *api.Client
	Store      *store.Store
	Browser    *engine.Browser
	Session    *storage.Session
	Favorites  *storage.Favorites
	Newsletter *storage.Newsletter
	Auth       *usecase.AuthUsecase
	Post       *usecase.PostUsecase
	Booking    *usecase.BookingUsecase

	tp      *sdktrace.TracerProvider
	redisKV *storage.RedisKV
	natsPub *natsadapter.Publisher
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	log, err := logger.NewZapLogger(logger.Config{
		Level:      cfg.Logger.Level,
		Encoding:   cfg.Logger.Encoding,
		TimeFormat: cfg.Logger.TimeFormat,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log.Infof("Configuration loaded: Env=%s, API=%s", cfg.Env, cfg.API.BaseURL)

	a := &App{Cfg: cfg, Log: log}

	if cfg.Tracing.Enabled {
		tp, err := tracer.Init(ctx, cfg.Tracing.Endpoint)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize tracer: %w", err)
		}
		a.tp = tp
		log.Info("Tracer initialized")
	}

	kv, err := a.newKV(ctx)
	if err != nil {
		return nil, err
	}

	a.Session = storage.NewSession(kv, log)
	a.Favorites = storage.NewFavorites(kv, log)

	var mailSender email.Sender
	if cfg.SMTP.Host != "" {
		mailSender, err = email.NewSMTPSender(cfg.SMTP, log)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SMTP sender: %w", err)
		}
		log.Info("SMTP sender initialized")
	}
	a.Newsletter = storage.NewNewsletter(kv, mailSender, log)

	notifier := notify.NewLogNotifier(log)
	a.API = api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, &sessionTokens{ctx: ctx, session: a.Session}, log, notifier)
	a.Store = store.New(a.API, log)
	a.Browser = engine.NewBrowser(a.Store, cfg.PageSize, cfg.Language)

	sink, err := a.newSink()
	if err != nil {
		return nil, err
	}

	a.Auth = usecase.NewAuthUsecase(a.API, a.Session, log)
	a.Post = usecase.NewPostUsecase(a.Store, a.Session, sink, log)
	a.Booking = usecase.NewBookingUsecase(a.Store, a.API, sink, log)

	return a, nil
}

func (a *App) newKV(ctx context.Context) (storage.KV, error) {
	switch a.Cfg.Storage.Backend {
	case "redis":
		kv, err := storage.NewRedisKV(ctx, a.Cfg.Storage.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis storage: %w", err)
		}
		a.redisKV = kv
		a.Log.Info("Redis storage initialized")
		return kv, nil
	default:
		a.Log.Infof("File storage initialized at %s", a.Cfg.Storage.FilePath)
		return storage.NewFileKV(a.Cfg.Storage.FilePath), nil
	}
}

// newSink assembles the side-channel sinks. Missing configuration is not an
// error: the flows then run without a side channel.
func (a *App) newSink() (usecase.EventSink, error) {
	var sinks usecase.MultiSink

	if a.Cfg.Telegram.BotToken != "" && a.Cfg.Telegram.ChatID != "" {
		tg, err := telegram.NewSink(a.Cfg.Telegram, a.Log)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, tg)
		a.Log.Info("Telegram sink initialized")
	} else {
		a.Log.Warn("Telegram sink not configured, post/booking requests will not reach the operators' chat")
	}

	if a.Cfg.NATS.Enabled {
		pub, err := natsadapter.NewPublisher(a.Cfg.NATS)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize NATS publisher: %w", err)
		}
		a.natsPub = pub
		sinks = append(sinks, pub)
		a.Log.Info("NATS publisher initialized")
	}

	if len(sinks) == 0 {
		return usecase.NopSink{}, nil
	}
	return sinks, nil
}

func (a *App) Close(ctx context.Context) {
	if a.natsPub != nil {
		a.natsPub.Close()
	}
	if a.redisKV != nil {
		if err := a.redisKV.Close(); err != nil {
			a.Log.Errorf("Error closing redis client: %v", err)
		}
	}
	if a.tp != nil {
		if err := a.tp.Shutdown(ctx); err != nil {
			a.Log.Errorf("Error shutting down tracer provider: %v", err)
		}
	}
}

// sessionTokens adapts the persisted session to the API client's TokenSource.
type sessionTokens struct {
	ctx     context.Context
	session *storage.Session
}

func (t *sessionTokens) Token() string {
	return t.session.Token(t.ctx)
}
