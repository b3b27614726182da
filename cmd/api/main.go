package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/villaflora/go-resto-console/internal/auth"
	"github.com/villaflora/go-resto-console/internal/config"
	"github.com/villaflora/go-resto-console/internal/feed"
	"github.com/villaflora/go-resto-console/internal/httpx"
	kafkax "github.com/villaflora/go-resto-console/internal/kafka"
	"github.com/villaflora/go-resto-console/internal/notify"
	"github.com/villaflora/go-resto-console/internal/postgres"
	"github.com/villaflora/go-resto-console/internal/redisx"
	"github.com/villaflora/go-resto-console/internal/reservations"
	"github.com/villaflora/go-resto-console/internal/site"
	"github.com/villaflora/go-resto-console/internal/triage"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("db schema: %v", err)
	}

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producers: created (booking) & triaged (engine)
	pCreated := kafkax.NewProducer(cfg.KafkaBrokers, reservations.TopicReservationCreated, 1024)
	pCreated.Start(ctx)
	pTriaged := kafkax.NewProducer(cfg.KafkaBrokers, reservations.TopicReservationTriaged, 1024)
	pTriaged.Start(ctx)

	repo := &reservations.Repo{DB: db}
	sessions := auth.NewSessions(rdb, cfg.StaffAccessCode)
	mailer := &notify.SMTPMailer{Addr: cfg.SMTPAddr, From: cfg.SMTPFrom, User: cfg.SMTPUser, Pass: cfg.SMTPPass}

	engine := &triage.Engine{
		Store:  repo,
		Auth:   sessions,
		Mailer: &notify.DecisionSender{Mailer: mailer},
		Events: &triage.KafkaEvents{Producer: pTriaged, Redis: rdb, ServiceName: cfg.ServiceName},
	}

	// Live feed: redis pub/sub -> full snapshot -> semua konsol
	hub := feed.NewHub(repo.Snapshot)
	go func() {
		if err := hub.Run(ctx, redisx.FeedWake(ctx, rdb)); err != nil && ctx.Err() == nil {
			log.Printf("feed hub exit: %v", err)
		}
	}()

	router := httpx.NewRouter()
	rh := &httpx.ReservationsHandler{
		Repo:     repo,
		Engine:   engine,
		Hub:      hub,
		Sessions: sessions,
		Redis:    rdb,
		Producer: pCreated,
		Service:  cfg.ServiceName,
	}
	rh.Register(router)
	sh := &httpx.SiteHandler{Repo: &site.Repo{DB: db}, Sessions: sessions}
	sh.Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	// graceful shutdown
	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	pCreated.Close() // tutup inbox -> flush & close writer
	pTriaged.Close()
	pCreated.WaitClosed()
	pTriaged.WaitClosed()
}
