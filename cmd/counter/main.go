// Package main provides a live terminal view of the waitlist signup count.
//
// It polls the API the same way the landing page does and rolls the
// displayed number through the same animation.
//
// Usage:
//
//	go run ./cmd/counter --url http://localhost:8080
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"

	"github.com/courselaunch/waitlist-server/internal/client"
	"github.com/courselaunch/waitlist-server/internal/counter"
)

func main() {
	url := flag.String("url", "http://localhost:8080", "Waitlist API base URL")
	interval := flag.Duration("interval", counter.DefaultPollInterval, "Poll interval")
	flag.Parse()

	c := client.New(*url)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := c.Ping(ctx); err != nil {
		log.Fatalf("Server unreachable at %s: %v", *url, err)
	}

	sync := counter.New(c, counter.WithPollInterval(*interval))
	sync.Subscribe(func(state counter.State) {
		fmt.Printf("\r%s people on the waitlist    ", humanize.Comma(state.DisplayCount))
		if state.LastError != nil {
			fmt.Printf("(last poll failed: %v)", state.LastError)
		}
	})

	sync.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	cancel()
	sync.Stop()

	// Leave the final count on its own line.
	fmt.Printf("\r%s people on the waitlist    \n", humanize.Comma(sync.State().Count))
}
