// Command qcachectl is a small operator-facing binary that builds a query
// result cache from a config file, drives it with a synthetic workload so
// its behavior can be observed, and prints periodic stats until it is asked
// to shut down.
package main

import (
	"context"
	"flag"
	"fmt"
	"hash/fnv"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/arkilian/qcache"
	"github.com/arkilian/qcache/internal/config"
	"github.com/arkilian/qcache/internal/shutdown"
)

var (
	version = "dev"
)

func main() {
	var (
		configFile  string
		maxBytes    int64
		queries     int
		showVersion bool
	)

	flag.StringVar(&configFile, "config", "", "Path to configuration file (YAML or JSON)")
	flag.Int64Var(&maxBytes, "max-bytes", 0, "Override the store's total byte budget")
	flag.IntVar(&queries, "queries", 8, "Number of distinct synthetic queries to cycle through")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "qcachectl - query result cache demo/ops tool\n\n")
		fmt.Fprintf(os.Stderr, "Usage: qcachectl [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  QCACHE_MAX_BYTES                      Store-wide byte budget\n")
		fmt.Fprintf(os.Stderr, "  QCACHE_ENTRY_PUT_TIMEOUT               Timed eviction after write completes\n")
		fmt.Fprintf(os.Stderr, "  QCACHE_MAX_ENTRY_SIZE                  Per-entry byte limit\n")
		fmt.Fprintf(os.Stderr, "  QCACHE_MIN_EXECUTIONS_BEFORE_CACHING   Executions required before admission\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("qcachectl version %s\n", version)
		os.Exit(0)
	}

	settings, err := config.Load(configFile)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if maxBytes > 0 {
		settings.MaxBytes = maxBytes
	}

	printBanner(settings)

	facade, err := qcache.New(settings)
	if err != nil {
		log.Fatalf("failed to create cache: %v", err)
	}

	mgr := shutdown.NewManager(shutdown.DefaultConfig())
	mgr.RegisterCloser(facade)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go runDemoWorkload(ctx, facade, settings, queries)
	go reportStats(ctx, facade)

	if err := mgr.ListenForSignals(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
		os.Exit(1)
	}
	cancel()
	log.Printf("shut down cleanly")
}

// runDemoWorkload cycles through a fixed set of synthetic queries, running
// each one, recording the run, and populating the cache on a miss — the
// same put/read protocol a real query pipeline would follow.
func runDemoWorkload(ctx context.Context, facade *qcache.Facade, settings qcache.Settings, numQueries int) {
	keys := make([]qcache.CacheKey, numQueries)
	for i := range keys {
		keys[i] = syntheticKey(i)
	}

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	i := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			key := keys[i%len(keys)]
			i++
			runOnce(facade, settings, key)
		}
	}
}

// runOnce follows the caller-driven protocol spec.md §6 describes:
// min_executions_before_caching is a threshold this caller applies to its
// own RecordRun count, not something the facade enforces on TryPut.
func runOnce(facade *qcache.Facade, settings qcache.Settings, key qcache.CacheKey) {
	runs := facade.RecordRun(key)

	if rh, ok := facade.TryRead(key); ok {
		rh.Next()
		return
	}

	if runs < settings.MinExecutionsBeforeCaching {
		return
	}

	ph := facade.TryPut(key)
	if ph == nil {
		return
	}
	defer ph.Close()

	ph.Push(qcache.Batch{
		Columns: []string{"session_id", "event_count"},
		Rows: [][]interface{}{
			{uuid.NewString(), int64(1)},
			{uuid.NewString(), int64(2)},
		},
	})
}

// syntheticKey builds a stable, distinct CacheKey for demo query i.
func syntheticKey(i int) qcache.CacheKey {
	h := fnv.New64a()
	fmt.Fprintf(h, "demo-query-%d", i)

	columns := []qcache.ColumnRef{
		{Name: "session_id", Type: "String"},
		{Name: "event_count", Type: "UInt64"},
	}
	settings := []qcache.Setting{
		{Name: "max_threads", Value: "4"},
	}
	return qcache.NewCacheKey(h.Sum64(), columns, settings, "")
}

func reportStats(ctx context.Context, facade *qcache.Facade) {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s := facade.Stats()
			log.Printf("stats: hits=%d misses=%d inserts=%d evicted_size=%d evicted_timeout=%d rejected_oversized=%d",
				s.Hits, s.Misses, s.Inserts, s.EvictedBySize, s.EvictedByTimeout, s.RejectedOversized)
		}
	}
}

func printBanner(settings qcache.Settings) {
	log.Printf("qcachectl starting")
	log.Printf("  max_bytes:                     %d", settings.MaxBytes)
	log.Printf("  query_cache_entry_put_timeout: %v", settings.EntryPutTimeout)
	log.Printf("  max_query_cache_entry_size:    %d", settings.MaxEntrySize)
	log.Printf("  min_executions_before_caching: %d", settings.MinExecutionsBeforeCaching)
}
