package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/ozzus/flypy/internal/application/assembler"
	"github.com/ozzus/flypy/internal/domain/models"
	"go.uber.org/zap"
)

func main() {
	var (
		path    string
		noColor bool
	)
	flag.StringVar(&path, "file", "", "path to a JSON array of trip option records")
	flag.BoolVar(&noColor, "no-color", false, "disable colored output")
	flag.Parse()

	log, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = log.Sync()
	}()

	if noColor {
		color.NoColor = true
	}
	if path == "" && flag.NArg() > 0 {
		path = flag.Arg(0)
	}
	if path == "" {
		log.Fatal("trip option file is required")
	}

	records, err := readRecords(path)
	if err != nil {
		log.Fatal("failed to read trip options", zap.Error(err), zap.String("path", path))
	}

	printed, rejected, err := printTrips(os.Stdout, records)
	if err != nil {
		log.Fatal("invalid trip options", zap.Error(err))
	}

	log.Info("itineraries printed", zap.Int("printed", printed), zap.Int("rejected", rejected))
}

func readRecords(path string) ([]models.TripOptionRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var records []models.TripOptionRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode trip options: %w", err)
	}

	return records, nil
}

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	legColor     = color.New(color.FgWhite)
	layoverColor = color.New(color.FgYellow)
	rejectColor  = color.New(color.FgRed)
)

// printTrips writes the leg and layover summaries of every option to w.
// Options that fail validation are reported in red and skipped. A record
// without journeys aborts before anything is written.
func printTrips(w io.Writer, records []models.TripOptionRecord) (printed, rejected int, err error) {
	outcomes, err := assembler.Build(records)
	if err != nil {
		return 0, 0, err
	}

	for _, o := range outcomes {
		if o.Rejected() {
			rejectColor.Fprintf(w, "Option %d rejected: %v\n", o.Index+1, o.Err)
			rejected++
			continue
		}

		headerColor.Fprintf(w, "Option %d. COST: %.2f\n", o.Index+1, o.Option.Cost())
		printJourney(w, "Onward", o.Option.Onward())
		if ret, ok := o.Option.Return(); ok {
			printJourney(w, "Return", ret)
		}
		printed++
	}

	return printed, rejected, nil
}

func printJourney(w io.Writer, title string, j models.Journey) {
	fmt.Fprintf(w, "  %s:\n", title)

	legs := j.Legs()
	layovers := j.Layovers()
	for i, leg := range legs {
		legColor.Fprintf(w, "    %s\n", leg)
		if i < len(layovers) {
			layoverColor.Fprintf(w, "    %s\n", layovers[i])
		}
	}
}
