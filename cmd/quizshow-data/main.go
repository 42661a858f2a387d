package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/quizshow/internal/questions"
)

type CLI struct {
	Stats StatsCmd `cmd:"" help:"Print summary statistics for a question archive"`
}

// StatsCmd loads an archive and reports what came out of it: how many
// playable categories and final questions survived parsing, the air-year
// span, and where the archive's original daily doubles sat on the board.
type StatsCmd struct {
	Path    string `arg:"" name:"path" help:"Path to the question archive CSV"`
	Verbose bool   `short:"v" help:"Log skipped rows while parsing"`
}

func (cmd StatsCmd) Run() error {
	logger := log.New(os.Stderr)
	if cmd.Verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}

	store, err := questions.Load(cmd.Path, logger)
	if err != nil {
		return err
	}

	minYear, maxYear := store.YearSpan()
	fmt.Printf("Categories: %d\n", store.Categories())
	fmt.Printf("Finals:     %d\n", store.Finals())
	fmt.Printf("Air years:  %d-%d\n", minYear, maxYear)

	rows := store.DailyDoubleRows()
	total := 0
	for _, n := range rows {
		total += n
	}
	fmt.Println("Daily doubles by row:")
	for row, n := range rows {
		pct := 0.0
		if total > 0 {
			pct = float64(n) / float64(total) * 100
		}
		fmt.Printf("  row %d: %6d (%.1f%%)\n", row+1, n, pct)
	}
	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("quizshow-data"),
		kong.Description("Utilities for quizshow question archives"),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
