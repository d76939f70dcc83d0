package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/KirkDiggler/autoref/internal/common/clock"
	"github.com/KirkDiggler/autoref/internal/common/logger"
	"github.com/KirkDiggler/autoref/internal/common/uuid"
	"github.com/KirkDiggler/autoref/internal/config"
	"github.com/KirkDiggler/autoref/internal/handlers/discord"
	"github.com/KirkDiggler/autoref/internal/handlers/httpapi"
	"github.com/KirkDiggler/autoref/internal/lobby/bancho"
	"github.com/KirkDiggler/autoref/internal/repositories/ledger"
	"github.com/KirkDiggler/autoref/internal/repositories/tournament"
	"github.com/KirkDiggler/autoref/internal/services/match"
	"github.com/KirkDiggler/autoref/internal/services/notify"
	"github.com/KirkDiggler/autoref/internal/services/scores"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "autoref: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("AUTOREF_CONFIG"))
	if err != nil {
		return err
	}

	log, err := logger.New(&logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	if err != nil {
		return err
	}
	log.WithField("tournament", cfg.Tournament.Name).Info("starting autoref")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Redis holds engine snapshots
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	// Postgres holds tournament records
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := tournament.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	tournamentRepo, err := tournament.NewGorm(&tournament.Config{DB: db})
	if err != nil {
		return err
	}
	snapshotRepo, err := ledger.NewRedis(&ledger.Config{
		RedisClient: redisClient,
		FinishedTTL: cfg.Redis.FinishedTTL,
	})
	if err != nil {
		return err
	}

	dialer, err := bancho.New(&bancho.Config{
		Addr:        cfg.Bancho.Addr,
		DialTimeout: cfg.Bancho.DialTimeout,
		SendLimit:   cfg.Bancho.SendLimit,
		SendBurst:   cfg.Bancho.SendBurst,
		Logger:      log,
	})
	if err != nil {
		return err
	}

	ids := uuid.New()

	feed, err := httpapi.NewFeed(&httpapi.FeedConfig{UUID: ids, Logger: log})
	if err != nil {
		return err
	}

	bot, err := discord.New(&discord.Config{
		Token:         cfg.Discord.Token,
		ApplicationID: cfg.Discord.ApplicationID,
		GuildID:       cfg.Discord.GuildID,
		Logger:        log,
	})
	if err != nil {
		return err
	}

	matchSvc, err := match.NewService(&match.Config{
		Tournament:     tournamentRepo,
		Snapshots:      snapshotRepo,
		Dialer:         dialer,
		Notifier:       notify.NewFanout(bot.Notifier(), feed),
		Clock:          &clock.DefaultClock{},
		UUID:           ids,
		Logger:         log,
		Engine:         cfg.EngineSettings(),
		TournamentName: cfg.Tournament.Name,
		LineDelay:      cfg.Match.LineDelay,
		PrivateLobbies: cfg.Tournament.PrivateLobbies,
		PersistTimeout: cfg.Match.PersistTimeout,
	})
	if err != nil {
		return err
	}

	scoreSvc, err := scores.NewService(&scores.Config{
		Repository:     tournamentRepo,
		Logger:         log,
		TournamentName: cfg.Tournament.Name,
	})
	if err != nil {
		return err
	}

	snapshotter, err := match.NewSnapshotter(&match.SnapshotterConfig{
		Service:  matchSvc,
		Interval: cfg.Match.SnapshotInterval,
		Timeout:  cfg.Match.PersistTimeout,
		Logger:   log,
	})
	if err != nil {
		return err
	}

	refCmd, err := discord.NewRefCommand(&discord.RefCommandConfig{
		MatchService:  matchSvc,
		ScoreService:  scoreSvc,
		Referees:      tournamentRepo,
		Channels:      bot.Notifier(),
		Logger:        log,
		CategoryID:    cfg.Discord.CategoryID,
		RefereeRoleID: cfg.Discord.RefereeRoleID,
	})
	if err != nil {
		return err
	}

	logInterrupted(ctx, log, snapshotRepo)

	if err := bot.Start(matchSvc, refCmd); err != nil {
		return err
	}
	snapshotter.Start()

	var server *httpapi.Server
	serverErr := make(chan error, 1)
	if cfg.HTTP.Addr != "" {
		server, err = httpapi.New(&httpapi.Config{
			Addr:           cfg.HTTP.Addr,
			Matches:        matchSvc,
			Feed:           feed,
			Logger:         log,
			OriginPatterns: cfg.HTTP.OriginPatterns,
		})
		if err != nil {
			return err
		}
		go func() { serverErr <- server.ListenAndServe() }()
	}

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	select {
	case sig := <-sc:
		log.WithField("signal", sig.String()).Info("shutting down")
	case err := <-serverErr:
		if err != nil {
			log.WithError(err).Error("http server stopped")
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	var errs []error
	if err := snapshotter.Stop(); err != nil {
		errs = append(errs, fmt.Errorf("snapshotter: %w", err))
	}
	// sessions stop before the bot so their final notices still reach Discord
	if err := matchSvc.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("matches: %w", err))
	}
	if server != nil {
		if err := server.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("http: %w", err))
		}
	}
	if err := bot.Stop(); err != nil {
		errs = append(errs, fmt.Errorf("discord: %w", err))
	}

	if err := errors.Join(errs...); err != nil {
		log.WithError(err).Error("shutdown finished with errors")
		return err
	}
	log.Info("autoref has been shut down")
	return nil
}

// logInterrupted lists matches whose sessions did not end cleanly last run; /ref start resumes them
func logInterrupted(ctx context.Context, log logrus.FieldLogger, snapshots ledger.Repository) {
	out, err := snapshots.ListActive(ctx, &ledger.ListActiveInput{})
	if err != nil {
		log.WithError(err).Warn("could not list interrupted matches")
		return
	}
	for _, snap := range out.Snapshots {
		log.WithFields(logrus.Fields{
			"match_id":   snap.MatchID,
			"phase":      snap.Phase,
			"updated_at": snap.UpdatedAt,
		}).Warn("match was interrupted, restart it with /ref start to resume")
	}
}
