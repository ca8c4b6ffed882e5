package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/bestiarydata/scraper/internal/bestiary"
	"github.com/bestiarydata/scraper/internal/config"
	"github.com/bestiarydata/scraper/internal/export"
	"github.com/bestiarydata/scraper/internal/feats"
	"github.com/bestiarydata/scraper/internal/fetch"
	"github.com/bestiarydata/scraper/internal/logging"
	"github.com/bestiarydata/scraper/internal/page"
)

func main() {
	cfg := config.LoadOrDefault()

	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("scrape failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logger *logging.Logger) error {
	client := fetch.NewClient(fetch.Config{
		Timeout:           cfg.HTTP.Timeout,
		MaxRetries:        cfg.HTTP.MaxRetries,
		RequestsPerSecond: cfg.HTTP.RequestsPerSecond,
	})

	// the feat catalog is shared read-only by all workers, so it has to
	// be complete before the pool starts
	catalog, err := feats.Load(ctx, client, cfg.Source.FeatsURL)
	if err != nil {
		return err
	}
	logger.Info("feat catalog loaded", zap.Int("feats", catalog.Len()))

	indexData, err := client.Get(ctx, cfg.Source.IndexURL)
	if err != nil {
		return err
	}
	indexPage, err := page.New(indexData)
	if err != nil {
		return err
	}

	var links []string
	for _, link := range indexPage.MonsterLinks() {
		if strings.Contains(link, "summon") {
			continue
		}
		links = append(links, link)
	}
	logger.Info("index fetched", zap.String("url", cfg.Source.IndexURL), zap.Int("links", len(links)))

	assembler := bestiary.New(client, catalog, logger.Named("bestiary"))
	records := assembler.ParseAll(ctx, links, cfg.Workers.Max)

	out, err := os.Create(cfg.Output.Path)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := export.WriteCSV(out, records); err != nil {
		return err
	}
	logger.Info("dataset written", zap.String("path", cfg.Output.Path), zap.Int("records", len(records)))
	return nil
}
