// Package main provides a tool to seed the database with test submissions.
//
// Useful for demoing the live counter and exercising the duplicate-email
// path without filling in the form by hand.
//
// Usage:
//
//	DB_PATH=~/waitlist/data/waitlist.db go run ./cmd/seed
//	DB_PATH=~/waitlist/data/waitlist.db go run ./cmd/seed --count 500
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/courselaunch/waitlist-server/internal/domain"
	"github.com/courselaunch/waitlist-server/internal/id"
	"github.com/courselaunch/waitlist-server/internal/store"
)

var count = flag.Int("count", 100, "Number of submissions to create")

var firstNames = []string{
	"Ada", "Alan", "Barbara", "Dennis", "Donald", "Edsger", "Grace",
	"John", "Katherine", "Ken", "Leslie", "Margaret", "Niklaus", "Tony",
}

var lastNames = []string{
	"Lovelace", "Turing", "Liskov", "Ritchie", "Knuth", "Dijkstra",
	"Hopper", "Backus", "Johnson", "Thompson", "Lamport", "Hamilton",
	"Wirth", "Hoare",
}

func main() {
	flag.Parse()

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/waitlist/data/waitlist.db")
	}

	fmt.Printf("Opening database at: %s\n", dbPath)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := store.Open(dbPath, logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	created := 0
	skipped := 0
	for i := 0; i < *count; i++ {
		first := firstNames[rng.Intn(len(firstNames))]
		last := lastNames[rng.Intn(len(lastNames))]

		sub := domain.Submission{
			ID:                  id.MustGenerate(id.Submission),
			Name:                first + " " + last,
			Email:               fmt.Sprintf("%s.%s%d@example.com", first, last, rng.Intn(10000)),
			SubscribeNewsletter: rng.Intn(2) == 0,
			SubscribeUpdates:    rng.Intn(2) == 0,
			SubscribeReleases:   rng.Intn(3) == 0,
			CreatedAt:           time.Now().UTC().Add(-time.Duration(rng.Intn(720)) * time.Hour),
		}

		if err := s.CreateSubmission(ctx, &sub); err != nil {
			if err == store.ErrAlreadyExists {
				skipped++
				continue
			}
			log.Fatalf("Failed to create submission: %v", err)
		}
		created++
	}

	total, err := s.CountSubmissions(ctx)
	if err != nil {
		log.Fatalf("Failed to count submissions: %v", err)
	}

	fmt.Printf("Created %d submissions (%d duplicates skipped), total now %d\n", created, skipped, total)
}
