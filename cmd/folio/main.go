// Command folio serves the bilingual portfolio site.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/dmitrymomot/folio/internal/contact"
	"github.com/dmitrymomot/folio/internal/locales"
	"github.com/dmitrymomot/folio/internal/portfolio"
	"github.com/dmitrymomot/folio/internal/web"
	"github.com/dmitrymomot/folio/pkg/config"
	"github.com/dmitrymomot/folio/pkg/email"
	"github.com/dmitrymomot/folio/pkg/httpserver"
	"github.com/dmitrymomot/folio/pkg/i18n"
	"github.com/dmitrymomot/folio/pkg/logger"
	"github.com/dmitrymomot/folio/pkg/ratelimiter"
	"github.com/dmitrymomot/folio/pkg/redis"
	"github.com/dmitrymomot/folio/pkg/requestid"
)

type appConfig struct {
	Name           string        `env:"APP_NAME" envDefault:"folio"`
	Env            string        `env:"APP_ENV" envDefault:"development"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	DefaultLang    string        `env:"DEFAULT_LANG" envDefault:"es"`
	Languages      []string      `env:"LANGUAGES" envSeparator:"," envDefault:"es,en"`
	LocalesDir     string        `env:"LOCALES_DIR"`
	LocalesURL     string        `env:"LOCALES_URL"`
	PreloadTimeout time.Duration `env:"PRELOAD_TIMEOUT" envDefault:"5s"`
	LoadTimeout    time.Duration `env:"TRANSLATION_WAIT_TIMEOUT" envDefault:"2s"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
}

func main() {
	if err := config.LoadEnv(); err != nil {
		slog.Error("failed to load .env", logger.Error(err))
		os.Exit(1)
	}

	var (
		app        appConfig
		contactCfg contact.Config
		redisCfg   redis.Config
		serverCfg  httpserver.Config
		emailCfg   email.Config
		s3Cfg      i18n.S3Config
	)
	for _, err := range []error{
		config.Load(&app),
		config.Load(&contactCfg),
		config.Load(&redisCfg),
		config.Load(&serverCfg),
		config.Load(&emailCfg),
		config.Load(&s3Cfg),
	} {
		if err != nil {
			slog.Error("failed to load config", logger.Error(err))
			os.Exit(1)
		}
	}

	log := logger.New(
		logger.WithEnvironment(app.Env, app.Name),
		logger.WithLevelName(app.LogLevel),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	if err := run(context.Background(), log, app, contactCfg, redisCfg, serverCfg, emailCfg, s3Cfg); err != nil {
		log.Error("folio stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(
	ctx context.Context,
	log *slog.Logger,
	app appConfig,
	contactCfg contact.Config,
	redisCfg redis.Config,
	serverCfg httpserver.Config,
	emailCfg email.Config,
	s3Cfg i18n.S3Config,
) error {
	source, err := translationSource(ctx, app, s3Cfg)
	if err != nil {
		return err
	}
	catalog := i18n.NewCatalog(source,
		i18n.WithLanguages(app.Languages...),
		i18n.WithDefaultLanguage(app.DefaultLang),
		i18n.WithCacheOptions(
			i18n.WithLogger(log),
			i18n.WithBaseContext(ctx),
			i18n.WithKnownNamespaces(locales.Namespaces()...),
		),
	)

	preloadCtx, cancel := context.WithTimeout(ctx, app.PreloadTimeout)
	if err := catalog.Preload(preloadCtx, locales.Namespaces()...); err != nil {
		// Failed namespaces are retried on the next request that needs them.
		log.WarnContext(ctx, "translations preloaded with errors", logger.Error(err))
	}
	cancel()

	sender, err := email.NewSender(emailCfg, log)
	if err != nil {
		return err
	}
	to := contactCfg.To
	if to == "" {
		to = portfolio.Default().Site.Email
	}
	svc := contact.NewService(sender, to, contact.WithDelay(contactCfg.Delay), contact.WithLogger(log))

	var (
		store  ratelimiter.Store
		checks []httpserver.Check
	)
	if redisCfg.Enabled() {
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		defer client.Close()
		store = ratelimiter.NewRedisStore(client, ratelimiter.WithKeyPrefix(app.Name+":contact"))
		checks = append(checks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client)})
	} else {
		mem := ratelimiter.NewMemoryStore()
		defer mem.Close()
		store = mem
	}
	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{
		Capacity:       contactCfg.RateCapacity,
		RefillRate:     1,
		RefillInterval: contactCfg.RateInterval,
	})
	if err != nil {
		return err
	}

	site, err := web.New(catalog, portfolio.Default(), svc,
		web.WithLogger(log),
		web.WithRateLimiter(limiter),
		web.WithLoadTimeout(app.LoadTimeout),
		web.WithRequestTimeout(app.RequestTimeout),
		web.WithReadinessChecks(checks...),
	)
	if err != nil {
		return err
	}

	srv := httpserver.NewFromConfig(serverCfg, httpserver.WithLogger(log))
	return srv.Run(ctx, site.Routes())
}

// translationSource picks S3, then HTTP, then a local directory, and falls
// back to the embedded documents.
func translationSource(ctx context.Context, app appConfig, s3Cfg i18n.S3Config) (i18n.Source, error) {
	switch {
	case s3Cfg.Bucket != "":
		client, err := i18n.NewS3Client(ctx, s3Cfg)
		if err != nil {
			return nil, err
		}
		return i18n.NewS3Source(client, s3Cfg.Bucket, s3Cfg.Prefix), nil
	case app.LocalesURL != "":
		return i18n.NewHTTPSource(app.LocalesURL)
	case app.LocalesDir != "":
		info, err := os.Stat(app.LocalesDir)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			return nil, errors.New("LOCALES_DIR is not a directory")
		}
		return i18n.NewFSSource(os.DirFS(app.LocalesDir)), nil
	}
	return locales.Source(), nil
}
