// Package main submits an interest form from the command line, driving the
// same coordinator the landing page uses: validation first, cached input on
// failure, duplicate-email mapped to a field error.
//
// Usage:
//
//	go run ./cmd/submit --url http://localhost:8080 --name "Jane Doe" --email jane@example.com
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/courselaunch/waitlist-server/internal/client"
	"github.com/courselaunch/waitlist-server/internal/domain"
	"github.com/courselaunch/waitlist-server/internal/errors"
	"github.com/courselaunch/waitlist-server/internal/form"
	"github.com/courselaunch/waitlist-server/internal/formcache"
	"github.com/courselaunch/waitlist-server/internal/validation"
)

func main() {
	url := flag.String("url", "http://localhost:8080", "Waitlist API base URL")
	name := flag.String("name", "", "Name to submit")
	email := flag.String("email", "", "Email to submit")
	newsletter := flag.Bool("newsletter", false, "Subscribe to the newsletter")
	updates := flag.Bool("updates", false, "Subscribe to course updates")
	releases := flag.Bool("releases", false, "Subscribe to release announcements")
	flag.Parse()

	c := client.New(*url)
	cache := formcache.New(domain.Submission.IsEmpty)
	coordinator := form.NewCoordinator(c, validation.New(), cache, errors.NewClassifier(nil), nil)

	coordinator.SetName(*name)
	coordinator.SetEmail(*email)
	coordinator.SetSubscriptions(*newsletter, *updates, *releases)

	state := coordinator.Submit(context.Background())

	switch state.Status {
	case form.StatusSubmitted:
		fmt.Println("You're on the list!")
	default:
		for field, msg := range state.FieldErrors {
			fmt.Fprintf(os.Stderr, "%s: %s\n", field, msg)
		}
		if state.GeneralError != "" {
			fmt.Fprintln(os.Stderr, state.GeneralError)
		}
		if _, ok := cache.Recover(form.FormID); ok {
			fmt.Fprintln(os.Stderr, "Your input was saved and will not be lost.")
		}
		os.Exit(1)
	}
}
