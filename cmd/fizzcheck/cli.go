package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/zeropsio/fizzcheck/internal/auth"
	"github.com/zeropsio/fizzcheck/internal/config"
	fcinit "github.com/zeropsio/fizzcheck/internal/init"
	"github.com/zeropsio/fizzcheck/internal/logger"
	"github.com/zeropsio/fizzcheck/internal/ops"
	"github.com/zeropsio/fizzcheck/internal/platform"
	"github.com/zeropsio/fizzcheck/internal/server"
	"github.com/zeropsio/fizzcheck/internal/smoke"
	"golang.org/x/time/rate"
)

// Exit codes.
const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

const usage = `fizzcheck checks the fizzBuzz command of a CloudStack API.

Usage:
  fizzcheck run [-config path] [-tags a,b] [-data path] [-hardware] [-json]
  fizzcheck verify <number> <response>
  fizzcheck serve [-config path]
  fizzcheck init [-dir path] [-force]
  fizzcheck version
`

// run dispatches a subcommand and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return exitUsage
	}

	switch args[0] {
	case "run":
		return runSuite(ctx, args[1:], stdout, stderr)
	case "verify":
		return runVerify(args[1:], stdout, stderr)
	case "serve":
		return runServe(ctx, args[1:], stderr)
	case "init":
		return runInit(args[1:], stderr)
	case "version":
		fmt.Fprintf(stdout, "fizzcheck %s (%s, %s)\n", server.Version, server.Commit, server.Built)
		return exitOK
	case "help", "-h", "-help", "--help":
		fmt.Fprint(stdout, usage)
		if desc := config.Description(); desc != "" {
			fmt.Fprintf(stdout, "\n%s\n", desc)
		}
		return exitOK
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return exitUsage
	}
}

func runSuite(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to config file")
	tags := fs.String("tags", "", "comma-separated tags; overrides suite.tags")
	dataPath := fs.String("data", "", "test data YAML; overrides suite.dataPath")
	hardware := fs.Bool("hardware", false, "run cases that require hardware")
	asJSON := fs.Bool("json", false, "print the report as JSON")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	cfg, err := config.Load(config.ResolvePath(*configPath))
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return exitUsage
	}
	log := logger.New(cfg.Env, stderr)

	client, counter, err := newClients(cfg)
	if err != nil {
		log.Error("create clients", logger.Err(err))
		return exitUsage
	}

	if *dataPath == "" {
		*dataPath = cfg.Suite.DataPath
	}
	data := smoke.DefaultTestData()
	if *dataPath != "" {
		if data, err = smoke.LoadTestData(*dataPath); err != nil {
			log.Error("load test data", logger.Err(err))
			return exitUsage
		}
	}

	opts := smoke.RunOptions{Tags: cfg.Suite.Tags, Hardware: *hardware}
	if *tags != "" {
		opts.Tags = splitList(*tags)
	}

	report := smoke.NewRunner(client, counter, log, smoke.FizzBuzzCase(data)).Run(ctx, opts)
	if *asJSON {
		if err := report.WriteJSON(stdout); err != nil {
			log.Error("write report", logger.Err(err))
			return exitFail
		}
	} else {
		report.Print(stdout)
	}

	if !report.Passed() {
		return exitFail
	}
	return exitOK
}

func runVerify(args []string, stdout, stderr io.Writer) int {
	if len(args) != 2 {
		fmt.Fprintln(stderr, "usage: fizzcheck verify <number> <response>")
		return exitUsage
	}
	number, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		fmt.Fprintf(stderr, "number %q is not an integer\n", args[0])
		return exitUsage
	}

	res := ops.VerifyAnswer(number, args[1])
	if !res.Valid {
		fmt.Fprintln(stdout, color.RedString("false"))
		fmt.Fprintf(stderr, "expected %s for %d, got %q\n", res.Expected, number, res.Response)
		return exitFail
	}
	fmt.Fprintln(stdout, color.GreenString("true"))
	return exitOK
}

func runServe(ctx context.Context, args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to config file")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	cfg, err := config.Load(config.ResolvePath(*configPath))
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return exitUsage
	}
	// stdout carries the MCP protocol; logs go to stderr only.
	log := logger.New(cfg.Env, stderr)

	client, counter, err := newClients(cfg)
	if err != nil {
		log.Error("create clients", logger.Err(err))
		return exitUsage
	}

	// Full auth: validate credentials via the API.
	authInfo, err := auth.Resolve(ctx, client, client.Endpoint())
	if err != nil {
		log.Error("auth", logger.Err(err))
		return exitFail
	}
	log.Info("authenticated",
		slog.String("api", authInfo.APIHost),
		slog.String("version", authInfo.CloudStackVersion))

	data := smoke.DefaultTestData()
	if cfg.Suite.DataPath != "" {
		if data, err = smoke.LoadTestData(cfg.Suite.DataPath); err != nil {
			log.Error("load test data", logger.Err(err))
			return exitUsage
		}
	}

	srv := server.New(client, counter, authInfo, data, log)
	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server", logger.Err(err))
		return exitFail
	}
	return exitOK
}

func runInit(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dir := fs.String("dir", ".", "directory to write files to")
	force := fs.Bool("force", false, "overwrite existing files")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	if err := fcinit.Run(*dir, *force, stderr); err != nil {
		fmt.Fprintf(stderr, "init: %v\n", err)
		return exitFail
	}
	return exitOK
}

// newClients builds the API client and the instance counter selected by cfg.
func newClients(cfg *config.Config) (*platform.CloudStackClient, platform.InstanceCounter, error) {
	creds, err := auth.ResolveCredentials(cfg.API)
	if err != nil {
		return nil, nil, err
	}

	limit := rate.Inf
	if cfg.API.RateLimit > 0 {
		limit = rate.Limit(cfg.API.RateLimit)
	}
	client, err := platform.NewCloudStackClient(creds.APIURL, creds.APIKey, creds.SecretKey,
		platform.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
		platform.WithRateLimit(limit, cfg.API.Burst),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("create platform client: %w", err)
	}

	if cfg.Counter.Source != config.CounterZerops {
		return client, client, nil
	}
	z := cfg.Counter.Zerops
	counter, err := platform.NewZeropsCounter(z.Token, z.APIHost, z.ProjectID)
	if err != nil {
		return nil, nil, fmt.Errorf("create zerops counter: %w", err)
	}
	return client, counter, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
