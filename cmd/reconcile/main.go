// Command reconcile links the schedule fixtures of a dataset to its event
// candidates and prints the outcome as JSON.
//
//	reconcile -dataset fixtures.json -competition PL -season 2023-2024 -workers 8
//
// Without -competition every competition season in the dataset is reconciled.
// Without -dataset the built-in seed dataset is used.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fixture-reconciler/internal/app"
	"github.com/riskibarqy/fixture-reconciler/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fixture-reconciler/internal/platform/logging"
	"github.com/riskibarqy/fixture-reconciler/internal/usecase"
)

type options struct {
	datasetPath   string
	aliasesPath   string
	competition   string
	season        string
	workers       int
	logLevel      string
	failUnmatched bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return 2
	}

	logger := logging.New(logging.Options{
		Level:  logging.ParseLevel(opts.logLevel),
		Output: stderr,
		Fields: []any{"service", "fixture-reconciler-cli"},
	})
	defer func() { _ = logger.Sync() }()

	results, err := reconcile(ctx, opts, logger)
	if err != nil {
		logger.Error("reconcile failed", "error", err)
		return 1
	}

	encoder := sonic.ConfigDefault.NewEncoder(stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(newReport(results)); err != nil {
		logger.Error("write report", "error", err)
		return 1
	}

	if opts.failUnmatched {
		for _, result := range results {
			if result.UnmatchedCount > 0 {
				return 3
			}
		}
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("reconcile", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.datasetPath, "dataset", "", "path to a JSON dataset; empty uses the seed dataset")
	fs.StringVar(&opts.aliasesPath, "aliases", "", "path to a YAML alias bundle; empty uses the bundled tables")
	fs.StringVar(&opts.competition, "competition", "", "competition code; empty reconciles every competition season")
	fs.StringVar(&opts.season, "season", "", "season; defaults to the seed season when -dataset is empty")
	fs.IntVar(&opts.workers, "workers", 0, "worker count, 0 uses the default")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "debug, info, warn or error")
	fs.BoolVar(&opts.failUnmatched, "fail-unmatched", false, "exit with status 3 when any fixture stays unmatched")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		return options{}, fmt.Errorf("unexpected arguments")
	}
	if opts.competition != "" && opts.season == "" {
		if opts.datasetPath != "" {
			fmt.Fprintln(stderr, "-season is required with -competition and -dataset")
			return options{}, fmt.Errorf("missing season")
		}
		opts.season = memory.SeedSeason
	}
	return opts, nil
}

func reconcile(ctx context.Context, opts options, logger *logging.Logger) ([]usecase.ReconcileBatchResult, error) {
	aliases, err := app.LoadAliasTables(opts.aliasesPath)
	if err != nil {
		return nil, err
	}
	dataset, err := app.LoadDataset(opts.datasetPath, logger)
	if err != nil {
		return nil, err
	}

	repo := memory.NewDatasetRepository(dataset)
	svc := usecase.NewReconcileService(aliases, repo, repo, usecase.ReconcileServiceConfig{}, logger)

	targets := []memory.CompetitionSeason{{Competition: opts.competition, Season: opts.season}}
	if opts.competition == "" {
		targets = dataset.Keys()
	}

	results := make([]usecase.ReconcileBatchResult, 0, len(targets))
	for _, target := range targets {
		result, err := svc.ReconcileCompetition(ctx, target.Competition, target.Season, opts.workers)
		if err != nil {
			return nil, crerr.Wrapf(err, "reconcile %s %s", target.Competition, target.Season)
		}
		results = append(results, result)
	}
	return results, nil
}
