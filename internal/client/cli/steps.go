package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/dmitrijs2005/steptrack/internal/client/counter"
	"github.com/dmitrijs2005/steptrack/internal/common"
)

// Add records a step count. The count is taken from args ("add 5000") or,
// when absent, prompted for interactively.
func (a *App) Add(ctx context.Context, args []string) error {
	var raw string
	var err error

	if len(args) > 0 {
		raw = args[0]
	} else {
		raw, err = getSimpleText(a.reader, "Enter step count", os.Stdout)
		if err != nil {
			return err
		}
	}

	steps, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Not a number: %s", raw)
		return common.ErrInvalidInput
	}

	entry, err := a.stepService.Add(ctx, steps)
	if err != nil {
		if errors.Is(err, common.ErrInvalidInput) {
			log.Printf("Step count must not be negative")
		} else {
			log.Printf("Could not record steps: %s", err.Error())
		}
		return err
	}

	fmt.Printf("Recorded %d steps at %s\n", entry.Steps, entry.Date.Local().Format("15:04"))
	return nil
}

// Today prints the total steps recorded today.
func (a *App) Today(ctx context.Context) error {
	total, err := a.stepService.DailyTotal(ctx)
	if err != nil {
		log.Printf("Could not load today's total: %s", err.Error())
		return err
	}

	fmt.Printf("Today: %d steps\n", total)
	return nil
}

// Week prints a 7-day series ending today, oldest day first.
func (a *App) Week(ctx context.Context) error {
	totals, err := a.stepService.WeeklyTotals(ctx)
	if err != nil {
		log.Printf("Could not load weekly totals: %s", err.Error())
		return err
	}

	for _, day := range totals {
		fmt.Printf("%s  %6d\n", day.Date.Local().Format("Mon 02 Jan"), day.Steps)
	}
	return nil
}

// History lists recorded entries, newest first.
func (a *App) History(ctx context.Context) error {
	entries, err := a.stepService.List(ctx)
	if err != nil {
		log.Printf("Could not load history: %s", err.Error())
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No entries yet")
		return nil
	}

	for _, e := range entries {
		fmt.Printf("%s  %6d\n", e.Date.Local().Format("2006-01-02 15:04"), e.Steps)
	}
	return nil
}

// AutoCount toggles the automatic step counter.
func (a *App) AutoCount(ctx context.Context) error {
	if a.counter.State() == counter.Counting {
		if err := a.counter.Stop(); err != nil {
			log.Printf("Could not stop counter: %s", err.Error())
			return err
		}
		fmt.Println("Automatic counting stopped")
		return nil
	}

	if err := a.counter.Start(ctx, a.newStepSource()); err != nil {
		log.Printf("Could not start counter: %s", err.Error())
		return err
	}
	fmt.Printf("Automatic counting started, flushing every %s\n", a.config.AutoFlushInterval)
	return nil
}
