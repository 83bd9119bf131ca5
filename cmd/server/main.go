package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/tatamelab/tatame/internal/achievements"
	"github.com/tatamelab/tatame/internal/api"
	"github.com/tatamelab/tatame/internal/checkin"
	"github.com/tatamelab/tatame/internal/config"
	"github.com/tatamelab/tatame/internal/db"
	"github.com/tatamelab/tatame/internal/jobs"
	"github.com/tatamelab/tatame/internal/logging"
	"github.com/tatamelab/tatame/internal/notify"
	"github.com/tatamelab/tatame/internal/observability"
	"github.com/tatamelab/tatame/internal/ranking"
	"github.com/tatamelab/tatame/internal/realtime"
)

var release = "dev"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("sem .env, usando variáveis de ambiente")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logg, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logg.Closer()
	sugar := logg.Sugar

	flushSentry, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, release)
	if err != nil {
		sugar.Warnw("sentry desabilitado", "err", err)
	}
	defer flushSentry()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		sugar.Fatalw("conexão com o banco falhou", "err", err)
	}
	defer func() { _ = database.Close() }()

	if err := db.Migrate(database); err != nil {
		sugar.Fatalw("migração falhou", "err", err)
	}
	sugar.Infow("✅ migrações aplicadas")

	tg, err := notify.NewTelegram(cfg.BotToken, cfg.AdminChatID)
	if err != nil {
		sugar.Warnw("alertas telegram desabilitados", "err", err)
	}

	hub := realtime.NewHub()
	evaluator := &achievements.Evaluator{DB: database, Loc: cfg.Location, Sugar: sugar}
	checkinSvc := &checkin.Service{DB: database, Hub: hub, Loc: cfg.Location}

	// o ranking semanal é servido de cache; qualquer presença ou post novo
	// invalida e a próxima leitura recalcula do banco
	rankCache := ranking.NewWeeklyCache()
	hub.Subscribe("attendance", func(realtime.Change) { rankCache.Invalidate() })
	hub.Subscribe("training_posts", func(realtime.Change) { rankCache.Invalidate() })

	runner := jobs.New(ctx)
	runner.Every(24*time.Hour, "overdue_payments", jobs.OverduePaymentsScan(database, cfg.Location, tg, sugar))
	runner.Every(time.Hour, "ranking_snapshot", jobs.WeeklyRankingSnapshot(database, cfg.Location, sugar))
	runner.Every(time.Minute, "db_ping", jobs.DBPing(database))

	e := api.New(api.Deps{
		DB:        database,
		Cfg:       cfg,
		Log:       logg,
		Hub:       hub,
		Checkin:   checkinSvc,
		Evaluator: evaluator,
		Notifier:  tg,
		RankCache: rankCache,
	})

	go func() {
		sugar.Infow("servidor no ar", "addr", cfg.HTTPAddr, "tz", cfg.Location.String())
		if err := api.Start(e, cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("servidor caiu", "err", err)
		}
	}()

	<-ctx.Done()
	shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.Shutdown(shCtx); err != nil {
		sugar.Warnw("shutdown sujo", "err", err)
	}
	sugar.Infow("encerrado")
}
