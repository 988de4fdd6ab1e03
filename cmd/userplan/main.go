// Command userplan flips the active account between the free and premium
// plans, standing in for the checkout flow that would normally set it.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/storage"
)

func main() {
	var (
		planFlag      string
		dbFlag        string
		keepUsageFlag bool
	)

	flag.StringVar(&planFlag, "plan", models.PlanPremium, "plan to assign (free, premium)")
	flag.StringVar(&dbFlag, "db", "fintrack.db", "path to database file")
	flag.BoolVar(&keepUsageFlag, "keep-usage", false, "preserve today's quota counters instead of resetting them")
	flag.Parse()

	plan := strings.TrimSpace(strings.ToLower(planFlag))
	switch plan {
	case models.PlanFree, models.PlanPremium:
	default:
		exitWithError(fmt.Errorf("unsupported plan %q", plan))
	}

	db, err := storage.NewDB(dbFlag)
	if err != nil {
		exitWithError(fmt.Errorf("failed to open database: %w", err))
	}
	defer db.Close()

	user, err := db.GetUser()
	if err != nil {
		exitWithError(fmt.Errorf("failed to load user: %w", err))
	}
	if user == nil {
		exitWithError(errors.New("no active user; log in first"))
	}

	user.Plan = plan
	if err := db.SaveUser(*user); err != nil {
		exitWithError(fmt.Errorf("failed to update user plan: %w", err))
	}

	if !keepUsageFlag {
		today := models.Day(time.Now())
		if err := db.SaveDailyLimits(models.DailyLimits{Date: today}); err != nil {
			exitWithError(fmt.Errorf("failed to reset daily limits: %w", err))
		}
	}

	fmt.Printf("User %s (%s) updated to plan %s\n", user.Name, user.Email, user.Plan)
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
