// Package main provides the broken-link-resolver CLI entrypoint.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/rksxox-coder/broken-link-resolver/input"
	"github.com/rksxox-coder/broken-link-resolver/resolver"
	"github.com/rksxox-coder/broken-link-resolver/result"
	"github.com/rksxox-coder/broken-link-resolver/tui"
)

func main() {
	inputPath := flag.String("input", "", "file with URLs to check (.txt, .csv, or .xlsx)")
	concurrency := flag.Int("concurrency", 8, "number of concurrent workers")
	timeout := flag.Duration("timeout", 6*time.Second, "per-request timeout")
	budget := flag.Duration("budget", 10*time.Second, "total resolution budget per URL")
	format := flag.String("format", "text", "output format: text, json, or csv")
	output := flag.String("output", "", "write results to file instead of stdout")
	userAgent := flag.String("user-agent", "broken-link-resolver/1.0 (+https://github.com/rksxox-coder/broken-link-resolver)", "user agent string")
	memoryLimit := flag.Int64("memory-limit", 0, "soft memory limit in MB for large batches (0 disables)")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	noTUI := flag.Bool("no-tui", false, "disable the interactive progress display")

	flag.Parse()

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}

	urls, err := collectURLs(*inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Usage: broken-link-resolver [flags] <url>")
		fmt.Fprintln(os.Stderr, "       broken-link-resolver [flags] -input urls.txt")
		fmt.Fprintln(os.Stderr, "Flags:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg := resolver.Config{
		Timeout:       *timeout,
		Budget:        *budget,
		Concurrency:   *concurrency,
		UserAgent:     *userAgent,
		MemoryLimitMB: *memoryLimit,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The TUI owns the terminal; only plain runs may log to stderr live.
	useTUI := !*noTUI && *format == "text" && *output == "" && !*verbose

	var batch *result.BatchResult
	if useTUI {
		progressCh := make(chan resolver.Event, 100)
		res := resolver.New(cfg, log, progressCh)

		tuiModel := tui.NewModel(ctx, cancel, res, urls, progressCh)
		finalModel, err := tea.NewProgram(tuiModel).Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		batch = finalModel.(tui.Model).GetResult()
		if batch == nil {
			os.Exit(1)
		}
	} else {
		res := resolver.New(cfg, log, nil)
		batch = res.ResolveAll(ctx, urls)
	}

	if err := writeOutput(batch, *format, *output, useTUI); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if batch.Stats.Unrecovered+batch.Stats.Errored > 0 {
		os.Exit(1)
	}
}

// collectURLs gathers the URL list from the positional argument or the
// -input file. Exactly one of the two must be provided.
func collectURLs(inputPath string) ([]string, error) {
	switch {
	case inputPath != "" && flag.NArg() > 0:
		return nil, fmt.Errorf("pass either a URL argument or -input, not both")
	case inputPath != "":
		return input.ReadURLs(inputPath)
	case flag.NArg() == 1:
		return []string{flag.Arg(0)}, nil
	case flag.NArg() > 1:
		return flag.Args(), nil
	default:
		return nil, fmt.Errorf("no URLs given")
	}
}

// writeOutput renders the batch in the requested format. When the TUI ran,
// it already printed the text summary, so text mode becomes a no-op.
func writeOutput(batch *result.BatchResult, format, outputPath string, tuiRan bool) error {
	var w io.Writer = os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", outputPath, err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "json":
		return result.WriteJSON(w, batch.Results)
	case "csv":
		return result.WriteCSV(w, batch.Results)
	case "text":
		if !tuiRan {
			result.PrintResults(w, batch)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q (want text, json, or csv)", format)
	}
}
