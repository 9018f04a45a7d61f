package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"zeroedge/config"
	"zeroedge/engine"
	"zeroedge/messaging"
	"zeroedge/store"
	"zeroedge/www"
)

func main() {
	configPath := flag.String("config", "zeroedge.yaml", "path to config file")
	port := flag.Int("port", 0, "override web port")
	debug := flag.Bool("debug", false, "enable debug logging")
	seed := flag.Bool("seed", true, "seed demo data into an empty database")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *port != 0 {
		cfg.Web.Port = *port
	}

	db, err := store.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if *seed {
		if err := db.SeedDemoData(); err != nil {
			log.Fatalf("seed demo data: %v", err)
		}
	}

	if err := bootstrapAdmin(db); err != nil {
		log.Fatalf("bootstrap admin user: %v", err)
	}

	eng := engine.New(engine.Config{
		AppConfig:  cfg,
		ConfigPath: *configPath,
		DB:         db,
		LogFunc:    log.Printf,
		Debug:      *debug,
	})
	eng.Start()
	defer eng.Stop()

	// Messaging is best-effort at startup: a down broker should not keep
	// the cell offline. The outbox holds quality events until it connects.
	msgClient := messaging.NewClient(&cfg.Messaging)
	if err := msgClient.Connect(); err != nil {
		log.Printf("messaging connect (will retry via outbox): %v", err)
	}
	defer msgClient.Close()

	drainer := messaging.NewOutboxDrainer(db, msgClient, &cfg.Messaging)
	drainer.Start()
	defer drainer.Stop()

	twinPub := messaging.NewTwinPublisher(msgClient, cfg.Messaging.TwinTopic, cfg.Plant, cfg.CellID)
	twinPub.Attach(eng)

	cmdListener := messaging.NewCommandListener(msgClient, eng, cfg.Messaging.CommandTopic)
	if err := cmdListener.Start(); err != nil {
		log.Printf("command listener subscribe: %v", err)
	}

	router, stopRouter := www.NewRouter(eng)
	defer stopRouter()

	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Printf("zeroedge listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Printf("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
}

// bootstrapAdmin creates the default admin account on first run.
func bootstrapAdmin(db *store.DB) error {
	exists, err := db.AdminUserExists()
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	password := "admin"
	hash, err := www.HashPassword(password)
	if err != nil {
		return err
	}
	if _, err := db.CreateAdminUser("admin", hash); err != nil {
		return err
	}
	log.Printf("created default admin user %q with password %q, change it via POST /api/config/password", "admin", password)
	return nil
}
