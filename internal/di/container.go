package di

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/samber/do/v2"
	"github.com/samber/oops"

	adminRepo "github.com/fugui-tools/filter-bot/internal/modules/admin/repository"
	adminService "github.com/fugui-tools/filter-bot/internal/modules/admin/service"
	channelRepo "github.com/fugui-tools/filter-bot/internal/modules/channel/repository"
	channelService "github.com/fugui-tools/filter-bot/internal/modules/channel/service"
	connectionRepo "github.com/fugui-tools/filter-bot/internal/modules/connection/repository"
	connectionService "github.com/fugui-tools/filter-bot/internal/modules/connection/service"
	filterRepo "github.com/fugui-tools/filter-bot/internal/modules/filter/repository"
	filterService "github.com/fugui-tools/filter-bot/internal/modules/filter/service"
	statsRepo "github.com/fugui-tools/filter-bot/internal/modules/stats/repository"
	statsService "github.com/fugui-tools/filter-bot/internal/modules/stats/service"
	"github.com/fugui-tools/filter-bot/internal/shared/config"
	"github.com/fugui-tools/filter-bot/internal/shared/mongo"
	httpServer "github.com/fugui-tools/filter-bot/internal/transport/http"
	telegramHandler "github.com/fugui-tools/filter-bot/internal/transport/telegram"
)

// Setup initializes the dependency injection container
func Setup(ctx context.Context) (do.Injector, error) {
	injector := do.New()

	// Register Config
	do.Provide(injector, func(i do.Injector) (*config.Config, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, oops.With("context", "failed to load config").Wrap(err)
		}
		return cfg, nil
	})

	// Register Database
	do.Provide(injector, func(i do.Injector) (*mongo.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		db, err := mongo.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, oops.With("mongo_database", cfg.MongoDatabase, "context", "failed to connect to mongodb").Wrap(err)
		}
		return db, nil
	})

	// Register Filter Repository
	do.Provide(injector, func(i do.Injector) (filterRepo.Repository, error) {
		db := do.MustInvoke[*mongo.DB](i)
		return filterRepo.NewMongoStorage(db), nil
	})

	// Register Connection Repository
	do.Provide(injector, func(i do.Injector) (connectionRepo.Repository, error) {
		db := do.MustInvoke[*mongo.DB](i)
		return connectionRepo.NewMongoStorage(db), nil
	})

	// Register Channel Repository
	do.Provide(injector, func(i do.Injector) (channelRepo.Repository, error) {
		db := do.MustInvoke[*mongo.DB](i)
		return channelRepo.NewMongoStorage(db), nil
	})

	// Register Admin Repository
	do.Provide(injector, func(i do.Injector) (adminRepo.Repository, error) {
		db := do.MustInvoke[*mongo.DB](i)
		return adminRepo.NewMongoStorage(db), nil
	})

	// Register Stats Repository
	do.Provide(injector, func(i do.Injector) (statsRepo.Repository, error) {
		db := do.MustInvoke[*mongo.DB](i)
		return statsRepo.NewMongoStorage(db), nil
	})

	// Register Filter Service
	do.Provide(injector, func(i do.Injector) (*filterService.Service, error) {
		repo := do.MustInvoke[filterRepo.Repository](i)
		return filterService.New(repo), nil
	})

	// Register Connection Service
	do.Provide(injector, func(i do.Injector) (*connectionService.Service, error) {
		repo := do.MustInvoke[connectionRepo.Repository](i)
		return connectionService.New(repo), nil
	})

	// Register Channel Service
	do.Provide(injector, func(i do.Injector) (*channelService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		repo := do.MustInvoke[channelRepo.Repository](i)
		return channelService.New(repo, cfg.ChannelsPageSize), nil
	})

	// Register Admin Service
	do.Provide(injector, func(i do.Injector) (*adminService.Service, error) {
		repo := do.MustInvoke[adminRepo.Repository](i)
		return adminService.New(repo), nil
	})

	// Register Stats Service
	do.Provide(injector, func(i do.Injector) (*statsService.Service, error) {
		repo := do.MustInvoke[statsRepo.Repository](i)
		return statsService.New(repo), nil
	})

	// Register Telegram Handler
	do.Provide(injector, func(i do.Injector) (*telegramHandler.Handler, error) {
		cfg := do.MustInvoke[*config.Config](i)
		filters := do.MustInvoke[*filterService.Service](i)
		connections := do.MustInvoke[*connectionService.Service](i)
		channels := do.MustInvoke[*channelService.Service](i)
		admins := do.MustInvoke[*adminService.Service](i)
		stats := do.MustInvoke[*statsService.Service](i)
		return telegramHandler.New(cfg, filters, connections, channels, admins, stats), nil
	})

	// Register HTTP Server
	do.Provide(injector, func(i do.Injector) (*httpServer.Server, error) {
		cfg := do.MustInvoke[*config.Config](i)
		db := do.MustInvoke[*mongo.DB](i)
		server := httpServer.New(cfg, db)
		server.SetLogger(slog.Default())
		return server, nil
	})

	// Register Bot (needs to be initialized after handlers are ready)
	do.Provide(injector, func(i do.Injector) (*bot.Bot, error) {
		cfg := do.MustInvoke[*config.Config](i)
		handler := do.MustInvoke[*telegramHandler.Handler](i)

		opts := []bot.Option{
			bot.WithDefaultHandler(handler.HandleUpdate),
		}
		if cfg.TelegramAPIURL != "" {
			opts = append(opts, bot.WithServerURL(cfg.TelegramAPIURL))
		}

		b, err := bot.New(cfg.TelegramBotToken, opts...)
		if err != nil {
			return nil, oops.With("context", "failed to create telegram bot").Wrap(err)
		}

		// Register bot commands
		handler.RegisterCommands(ctx, b)

		// The authorization policy resolves group roles through the bot
		admins := do.MustInvoke[*adminService.Service](i)
		admins.SetRoleLookup(telegramHandler.NewRoleLookup(b))

		return b, nil
	})

	return injector, nil
}

// Shutdown gracefully shuts down all services
func Shutdown(injector do.Injector) error {
	ctx := context.Background()

	// Shutdown bot if it exists
	if b, err := do.Invoke[*bot.Bot](injector); err == nil && b != nil {
		b.Close(ctx)
	}

	// Disconnect from the database if connected
	if db, err := do.Invoke[*mongo.DB](injector); err == nil && db != nil {
		if err := db.Disconnect(ctx); err != nil {
			slog.Error("Failed to disconnect from mongodb", "error", err)
		}
	}

	return nil
}
