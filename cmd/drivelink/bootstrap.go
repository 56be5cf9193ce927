package main

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/drivelink-cli/internal/adapters/driven/api"
	"github.com/custodia-labs/drivelink-cli/internal/adapters/driven/auth"
	"github.com/custodia-labs/drivelink-cli/internal/adapters/driven/clock"
	"github.com/custodia-labs/drivelink-cli/internal/adapters/driven/config/env"
	"github.com/custodia-labs/drivelink-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/drivelink-cli/internal/adapters/driven/integrations"
	"github.com/custodia-labs/drivelink-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/drivelink-cli/internal/connectors/google"
	"github.com/custodia-labs/drivelink-cli/internal/connectors/google/drive"
	"github.com/custodia-labs/drivelink-cli/internal/core/domain"
	"github.com/custodia-labs/drivelink-cli/internal/core/ports/driven"
	"github.com/custodia-labs/drivelink-cli/internal/core/services"
	"github.com/custodia-labs/drivelink-cli/internal/i18n"
	"github.com/custodia-labs/drivelink-cli/internal/logger"
	"github.com/custodia-labs/drivelink-cli/internal/telemetry"
)

// telemetryShutdownTimeout bounds the final span flush.
const telemetryShutdownTimeout = 5 * time.Second

// bootstrap wires the driven adapters into the core services.
func bootstrap(ctx context.Context, opts cli.Options) (*cli.Services, func(), error) {
	settingsService, settings, err := loadSettings(opts, env.Load)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("api: %s, locale: %s, config: %s", settings.API.URL, settings.UI.Locale, settingsService.Path())

	shutdownTelemetry, err := telemetry.Setup(ctx, settings.Telemetry.OTelEndpoint, version)
	if err != nil {
		logger.Warn("telemetry disabled: %v", err)
	}

	bundle, err := i18n.LoadEmbedded()
	if err != nil {
		return nil, nil, fmt.Errorf("load messages: %w", err)
	}
	text := bundle.Localizer(settings.UI.Locale)

	watchCtx, stopWatching := context.WithCancel(ctx)
	release := func() {
		stopWatching()
		flushCtx, cancel := context.WithTimeout(context.Background(), telemetryShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(flushCtx); err != nil {
			logger.Warn("telemetry shutdown: %v", err)
		}
	}

	tokens, err := tokenProvider(watchCtx, settings.API)
	if err != nil {
		release()
		return nil, nil, err
	}

	client, err := api.NewClient(api.Config{
		BaseURL:     settings.API.URL,
		FoldersPath: settings.API.FoldersEndpoint,
		RateLimit:   settings.API.RateLimit,
	}, tokens)
	if err != nil {
		release()
		return nil, nil, err
	}

	inspector, err := driveInspector(ctx, settings.Drive)
	if err != nil {
		release()
		return nil, nil, err
	}

	source := integrations.NewSource(client)
	folders := services.NewFolderService(client, source, inspector)

	return &cli.Services{
		Integration: services.NewIntegrationService(client),
		Folders:     folders,
		Settings:    settingsService,
		Flows: services.NewFlows(services.FlowsConfig{
			API:           client,
			Folders:       folders,
			Status:        source,
			Clock:         clock.Real{},
			Text:          text,
			SettingsRoute: settings.UI.SettingsRoute,
		}),
		Text:          text,
		Callback:      settings.Callback,
		RefreshStatus: source.Refresh,
	}, release, nil
}

// loadSettings layers defaults, the config file, the environment and the
// global flags, in that order.
func loadSettings(
	opts cli.Options,
	loadEnv func() (env.Overrides, error),
) (*services.SettingsService, *domain.Settings, error) {
	store, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, nil, err
	}

	settingsService := services.NewSettingsService(store)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, err
	}

	overrides, err := loadEnv()
	if err != nil {
		return nil, nil, err
	}
	overrides.Apply(settings)

	if opts.APIURL != "" {
		settings.API.URL = opts.APIURL
	}
	if opts.Locale != "" {
		settings.UI.Locale = opts.Locale
	}
	return settingsService, settings, nil
}

// tokenProvider prefers an explicit token over the token file and rejects
// expired JWTs before any request is sent.
func tokenProvider(ctx context.Context, cfg domain.APISettings) (driven.TokenProvider, error) {
	providers := []driven.TokenProvider{auth.NewStaticTokenProvider(cfg.Token)}

	if cfg.TokenFile != "" {
		fileProvider, err := auth.NewFileTokenProvider(cfg.TokenFile)
		if err != nil {
			return nil, err
		}
		if err := fileProvider.Watch(ctx); err != nil {
			logger.Warn("token file will not be reloaded: %v", err)
		}
		providers = append(providers, fileProvider)
	}

	return auth.NewExpiryCheckedProvider(auth.NewChainTokenProvider(providers...)), nil
}

// driveInspector returns nil when no Drive access token is configured;
// 'folders verify' then reports that Drive access is not configured.
func driveInspector(ctx context.Context, cfg domain.DriveSettings) (driven.FolderInspector, error) {
	if cfg.AccessToken == "" {
		return nil, nil
	}
	ts := google.NewTokenSource(ctx, auth.NewStaticTokenProvider(cfg.AccessToken))
	svc, err := google.NewDriveService(ctx, ts)
	if err != nil {
		return nil, err
	}
	return drive.NewInspector(svc, google.NewRateLimiter()), nil
}
