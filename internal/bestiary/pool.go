package bestiary

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/bestiarydata/scraper/internal/statblock"
)

// ParseAll processes the page list with a fixed-size worker pool and
// returns all records, flattened. Pool size is capped at the number of
// pages so no idle workers are spawned. Record order is unspecified;
// aggregation downstream is order-independent.
func (a *Assembler) ParseAll(ctx context.Context, urls []string, maxWorkers int) []statblock.Record {
	if len(urls) == 0 {
		return nil
	}
	workers := maxWorkers
	if workers < 1 {
		workers = 1
	}
	if workers > len(urls) {
		workers = len(urls)
	}

	jobs := make(chan string)
	results := make(chan []statblock.Record)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for url := range jobs {
				results <- a.Parse(ctx, url)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, url := range urls {
			select {
			case jobs <- url:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var records []statblock.Record
	for batch := range results {
		records = append(records, batch...)
	}

	a.log.Info("parsed pages", zap.Int("pages", len(urls)), zap.Int("records", len(records)))
	return records
}
