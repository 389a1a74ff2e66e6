// Command coach reviews speech scripts from the command line.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dgallion1/scriptcoach/internal/coach"
	"github.com/dgallion1/scriptcoach/internal/config"
	"github.com/dgallion1/scriptcoach/internal/feedback"
	"github.com/dgallion1/scriptcoach/internal/mcptools"
	"github.com/dgallion1/scriptcoach/internal/watch"
)

type options struct {
	speechType string
	audience   string
	style      string
	complexity string
	goal       string
	rubric     string
	asJSON     bool
	prompt     bool
	watch      bool
	serveMCP   bool
	verbose    bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("coach", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: coach [flags] <file|glob>...\n       coach -mcp\n\nflags:\n")
		fs.PrintDefaults()
	}

	var opts options
	fs.StringVar(&opts.speechType, "type", "", "speech type: public_speech, monologue or debate (required)")
	fs.StringVar(&opts.audience, "audience", "", "who the script is performed for (required)")
	fs.StringVar(&opts.style, "style", "balanced", "coaching voice: balanced, strict or supportive")
	fs.StringVar(&opts.complexity, "complexity", "standard", "feedback reading level: standard, simplified or esl")
	fs.StringVar(&opts.goal, "goal", coach.DefaultGoal, "confidence, competition, or empty for no framing")
	fs.StringVar(&opts.rubric, "rubric", "on", "rubric scores: on or off")
	fs.BoolVar(&opts.asJSON, "json", false, "print structured results as JSON")
	fs.BoolVar(&opts.prompt, "prompt", false, "print a coaching brief instead of feedback")
	fs.BoolVar(&opts.watch, "watch", false, "review again whenever a file is saved")
	fs.BoolVar(&opts.serveMCP, "mcp", false, "serve the coaching tools over MCP on stdio")
	fs.BoolVar(&opts.verbose, "v", false, "debug logging")
	envFile := fs.String("env", ".env", "env file to load before reading configuration")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if err := config.LoadDotEnv(*envFile); err != nil {
		log.Error("load env", "error", err)
		return 1
	}
	cfg := config.Load()
	catalog, err := feedback.LoadCatalog(cfg.TemplatesFile)
	if err != nil {
		log.Error("load templates", "error", err)
		return 1
	}
	c := coach.New(cfg, catalog, nil, nil, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if opts.serveMCP {
		tools := &mcptools.Tools{Coach: c, AllowFiles: true, MaxBytes: cfg.MaxUploadBytes}
		srv := mcptools.NewServer(tools, cfg.ServiceVersion)
		if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("mcp server", "error", err)
			return 1
		}
		return 0
	}

	files, err := expand(fs.Args())
	if err != nil {
		fmt.Fprintf(stderr, "coach: %v\n", err)
		return 2
	}
	if len(files) == 0 {
		fs.Usage()
		return 2
	}

	cli := &runner{coach: c, opts: opts, maxBytes: cfg.MaxUploadBytes, stdout: stdout, stderr: stderr}
	code := cli.reviewAll(ctx, files)
	if !opts.watch {
		return code
	}

	w, err := watch.New(files, watch.DefaultWindow, log)
	if err != nil {
		fmt.Fprintf(stderr, "coach: %v\n", err)
		return 1
	}
	fmt.Fprintf(stderr, "watching %d file(s), press Ctrl+C to stop\n", len(files))
	if err := w.Run(ctx, func(path string) {
		cli.reviewAll(ctx, []string{path})
	}); err != nil {
		fmt.Fprintf(stderr, "coach: %v\n", err)
		return 1
	}
	return 0
}

// expand resolves doublestar patterns. A pattern with no matches is kept
// as a literal path so the missing file is reported when it is read.
func expand(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, p := range patterns {
		matches, err := doublestar.FilepathGlob(p, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", p, err)
		}
		if len(matches) == 0 {
			matches = []string{p}
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	return files, nil
}
