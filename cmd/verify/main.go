// Command verify validates a directory of published verb artifacts:
// the index plus every per-verb document it references. Run it against
// the editor's output before publishing.
//
// Usage:
//
//	verify -dir ./data
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/nkalandadze/zmna-backend/internal/adapter/dirdata"
)

func main() {
	dir := flag.String("dir", "./data", "directory with verbs-index.json and verb_*.json files")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	source := dirdata.NewSource(*dir, logger)

	index, err := source.FetchIndex(ctx)
	if err != nil {
		log.Fatalf("read index: %v", err)
	}

	var verified, missing, broken int
	for _, entry := range index.Verbs {
		doc, err := source.FetchDocument(ctx, entry.ID)
		if err != nil {
			broken++
			fmt.Fprintf(os.Stderr, "verb %d (%s): %v\n", entry.ID, entry.Georgian, err)
			continue
		}
		if doc == nil {
			missing++
			fmt.Fprintf(os.Stderr, "verb %d (%s): no data file\n", entry.ID, entry.Georgian)
			continue
		}
		if err := doc.Validate(); err != nil {
			broken++
			fmt.Fprintf(os.Stderr, "verb %d (%s): %v\n", entry.ID, entry.Georgian, err)
			continue
		}
		verified++
	}

	fmt.Printf("%d verbs indexed: %d valid, %d without data, %d broken.\n",
		len(index.Verbs), verified, missing, broken)

	if broken > 0 {
		os.Exit(1)
	}
}
