// Command chat runs the booking assistant as an interactive terminal
// session against the in-memory calendar. It is the quickest way to
// exercise the full conversation loop locally.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/medibook-ai/booking-assistant/internal/app/bootstrap"
	"github.com/medibook-ai/booking-assistant/internal/availability"
	appconfig "github.com/medibook-ai/booking-assistant/internal/config"
	"github.com/medibook-ai/booking-assistant/internal/dialogue"
	"github.com/medibook-ai/booking-assistant/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	cfg := appconfig.Load()
	logger := logging.New("warn")

	ctx := context.Background()

	loc, err := bootstrap.BuildLocation(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	calendarService, err := bootstrap.BuildCalendarService(ctx, cfg, logger, loc)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ext, closeExtractor, err := bootstrap.BuildExtractor(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeExtractor()

	controller := dialogue.NewController(dialogue.ControllerConfig{
		Calendar:      calendarService,
		Extractor:     ext,
		Logger:        logger,
		CalendarID:    cfg.CalendarID,
		Hours:         availability.WorkHours{Start: cfg.WorkDayStart, End: cfg.WorkDayEnd},
		SlotDuration:  time.Duration(cfg.SlotMinutes) * time.Minute,
		MaxDaysAhead:  cfg.MaxDaysAhead,
		MaxSlotsShown: cfg.MaxSlotsShown,
		Location:      loc,
	})
	service := dialogue.NewService(controller, dialogue.NewMemoryStore(), logger)

	sessionID, err := service.StartSession(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println("Booking assistant ready. Type 'reset' to start over, 'quit' to exit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		switch {
		case input == "":
			continue
		case input == "quit" || input == "exit":
			return
		case input == "reset":
			if err := service.Reset(ctx, sessionID); err != nil {
				fmt.Fprintln(os.Stderr, err)
				continue
			}
			fmt.Println("Conversation reset.")
			continue
		}

		reply, err := service.ProcessUserInput(ctx, sessionID, input)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		fmt.Println(reply)
	}
}
