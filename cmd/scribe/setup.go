package main

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/scribebot/internal/config"
	"github.com/sandevgo/scribebot/internal/core"
	"github.com/sandevgo/scribebot/internal/providers/llm"
	"github.com/sandevgo/scribebot/internal/service/chat"
	"github.com/sandevgo/scribebot/internal/service/convmem"
	"github.com/sandevgo/scribebot/internal/service/indexer"
	"github.com/sandevgo/scribebot/internal/storage/snapshot"
	"github.com/sandevgo/scribebot/internal/storage/sqlite"
	"github.com/sandevgo/scribebot/internal/transport/cli"
	"github.com/sandevgo/scribebot/internal/transport/discord"
	"github.com/sandevgo/scribebot/pkg/log"
	"github.com/sandevgo/scribebot/pkg/srv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// init env
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	idxCfg := config.NewIndexerConfig(ctx)
	memCfg := config.NewMemoryConfig(ctx)
	discordCfg := config.NewDiscordConfig(ctx)

	// 2. Storage
	db, turnsRepo, err := initStorage(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	services = append(services, srv.NewCleanup(db.Close))

	store := snapshot.NewStore(appCfg.GetIndexDir())

	// 3. Message-source gateway
	gateway, err := discord.NewGateway(discordCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize discord gateway")
	}

	// 4. Background indexer
	ix := indexer.NewIndexer(gateway, store, idxCfg)
	if appCfg.IsDiscordSelected() {
		services = append(services, indexer.NewService(ix, discordCfg.GuildID, idxCfg.Interval))
	}

	// 5. Conversation memory + periodic full reset
	memory := convmem.NewManager(turnsRepo, memCfg)
	services = append(services, convmem.NewJanitor(memory, memCfg.ResetInterval))

	// 6. Text-generation provider
	generator, err := llm.NewProvider(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize LLM provider")
	}

	// 7. Chat service with its context cache janitor
	cache := chat.NewContextCache(memCfg.CacheClearInterval)
	services = append(services, cache)

	chatSvc := chat.New(appCfg, generator, memory, store, cache, discordCfg.GuildID)

	// 8. Transports
	if appCfg.IsCLISelected() {
		rl, err := cli.NewReadLine(chatSvc, appCfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize CLI transport")
		}
		services = append(services, rl)
	}

	return services
}

func initStorage(ctx context.Context, cfg *config.AppConfig) (*sql.DB, core.TurnsRepository, error) {
	db, err := sqlite.NewDB(ctx, cfg.GetDatabasePath())
	if err != nil {
		return nil, nil, err
	}
	return db, sqlite.NewTurnsRepo(db), nil
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
