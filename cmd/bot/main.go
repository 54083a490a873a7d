package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"topflow/internal/collector"
	"topflow/internal/config"
	"topflow/internal/history"
	"topflow/internal/notifier"
	"topflow/internal/quote"
	"topflow/internal/scanner"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// historyCapacity bounds the in-memory cycle history used by the digest.
// At a 30-minute cadence this holds roughly one trading day.
const historyCapacity = 48

// digestWindow is how far back the digest task looks.
const digestWindow = 24 * time.Hour

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] TopFlow starting...")

	// Best-effort .env preload; real environment wins.
	_ = godotenv.Load()

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	fetcher := collector.NewTwelveDataFetcher(cfg.Quote.BaseURL, cfg.Quote.APIKey, cfg.Quote.Exchange, cfg.Proxy)
	log.Printf("[INFO] quote source: %s, parser: %s", fetcher.Name(), cfg.Quote.Parser)

	dn := notifier.NewDiscordNotifier(cfg.Discord.WebhookURL, cfg.Proxy)
	hist := history.NewRing(historyCapacity)

	sc := scanner.New(fetcher, dn, cfg.Scan.Watchlist, cfg.ScanInterval(), quote.Parser(cfg.Quote.Parser), hist)
	log.Printf("[INFO] watchlist: %v, interval: %s", cfg.Scan.Watchlist, cfg.ScanInterval())

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Optional daily digest on a cron schedule
	if cfg.Digest.Cron != "" {
		c := cron.New(cron.WithSeconds())
		_, err := c.AddFunc(cfg.Digest.Cron, func() {
			results := hist.Since(time.Now().Add(-digestWindow))
			if len(results) == 0 {
				log.Println("[INFO] digest: no cycle results to report")
				return
			}
			payload := notifier.SanitizePayload(notifier.FormatDigest(results))
			if err := dn.Deliver(ctx, payload); err != nil {
				log.Printf("[WARN] deliver digest: %v", err)
			}
		})
		if err != nil {
			log.Fatalf("[FATAL] register digest cron: %v", err)
		}
		c.Start()
		defer c.Stop()
		log.Printf("[INFO] digest scheduled: %s", cfg.Digest.Cron)
	}

	go sc.Run(ctx)
	log.Println("[INFO] TopFlow is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] TopFlow stopped")
}
