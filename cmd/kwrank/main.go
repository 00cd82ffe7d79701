package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/kwrank"
	"github.com/fwojciec/kwrank/analyze"
	"github.com/fwojciec/kwrank/fs"
	"github.com/fwojciec/kwrank/goquery"
	kwhttp "github.com/fwojciec/kwrank/http"
	"github.com/fwojciec/kwrank/readability"
	"github.com/fwojciec/kwrank/rod"
	kwslog "github.com/fwojciec/kwrank/slog"
	"github.com/fwojciec/kwrank/sqlite"
	"github.com/fwojciec/kwrank/tfidf"
	"github.com/fwojciec/kwrank/trafilatura"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database used by the history commands.
	DB *sqlite.DB

	// Analyses overrides the SQLite history service, for end-to-end testing.
	Analyses kwrank.AnalysisService

	closers []func() error
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var firstErr error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	m.closers = nil
	if m.DB != nil {
		if err := m.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		m.DB = nil
	}
	return firstErr
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("kwrank"),
		kong.Description("Rank the keywords of web pages by TF-IDF weight."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
		kong.Vars{"default_db": defaultDBPath()},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'kwrank --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	deps.Logger, err = newLogger(stderr, cli.LogLevel, cmd)
	if err != nil {
		return err
	}
	defer m.Close()

	switch cmd {
	case "analyze":
		c := &cli.Analyze
		if deps.Analyzer, err = m.newAnalyzer(c.PipelineFlags, c.Top, deps.Logger); err != nil {
			if c.Render {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --render")
			}
			return err
		}
		deps.Limiter = analyze.NewDomainLimiter(c.RPS)
		if c.Out != "" {
			deps.Writer = fs.NewExporter(c.Out)
		}
		if c.Save {
			if deps.Analyses, err = m.openHistory(cli.DB, stderr); err != nil {
				return err
			}
		}
	case "serve":
		c := &cli.Serve
		if deps.Analyzer, err = m.newAnalyzer(c.PipelineFlags, kwrank.AnalyzeTopN, deps.Logger); err != nil {
			if c.Render {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --render")
			}
			return err
		}
	case "history", "show", "delete":
		if deps.Analyses, err = m.openHistory(cli.DB, stderr); err != nil {
			return err
		}
	}

	return kongCtx.Run(deps)
}

// newAnalyzer wires the keyword pipeline, decorated with logging.
func (m *Main) newAnalyzer(flags PipelineFlags, topN int, logger *slog.Logger) (kwrank.Analyzer, error) {
	if topN <= 0 {
		return nil, kwrank.Errorf(kwrank.EINVALID, "--top must be positive, got %d", topN)
	}
	if flags.Timeout <= 0 {
		return nil, kwrank.Errorf(kwrank.EINVALID, "--timeout must be positive, got %s", flags.Timeout)
	}

	var fetcher kwrank.Fetcher
	if flags.Render {
		f, err := rod.NewFetcher(rod.WithFetchTimeout(flags.Timeout))
		if err != nil {
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = f
	} else {
		fetcher = kwhttp.NewFetcher(kwhttp.WithTimeout(flags.Timeout))
	}
	m.closers = append(m.closers, fetcher.Close)

	p := &analyze.Pipeline{
		Fetcher:   kwslog.NewLoggingFetcher(fetcher, logger),
		Extractor: kwslog.NewLoggingTextExtractor(goquery.NewTextExtractor(), logger),
		Ranker:    kwslog.NewLoggingRanker(tfidf.NewRanker(), logger),
		TopN:      topN,
	}
	switch flags.Extractor {
	case "trafilatura":
		p.Content = trafilatura.NewExtractor()
	case "readability":
		p.Content = readability.NewExtractor()
	}

	return kwslog.NewLoggingAnalyzer(p, logger), nil
}

// openHistory opens the history database unless a service was injected.
func (m *Main) openHistory(path string, stderr io.Writer) (kwrank.AnalysisService, error) {
	if m.Analyses != nil {
		return m.Analyses, nil
	}

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		m.DB = nil
		fmt.Fprintf(stderr, "Hint: Set KWRANK_DB to use a different database path\n")
		return nil, fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	return sqlite.NewAnalysisService(m.DB), nil
}

// newLogger builds a text logger on w. Serve logs at info by default; other
// commands only report warnings.
func newLogger(w io.Writer, level, cmd string) (*slog.Logger, error) {
	var lvl slog.Level
	switch {
	case level != "":
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, kwrank.Errorf(kwrank.EINVALID, "invalid log level %q", level)
		}
	case cmd == "serve":
		lvl = slog.LevelInfo
	default:
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "kwrank.db"
	}
	return filepath.Join(home, ".kwrank", "kwrank.db")
}

// errorText returns the message shown to the user for err. Application
// errors carry a readable message; anything else is printed in full so the
// underlying cause is not lost.
func errorText(err error) string {
	if kwrank.ErrorCode(err) == kwrank.EINTERNAL {
		return err.Error()
	}
	return kwrank.ErrorMessage(err)
}
