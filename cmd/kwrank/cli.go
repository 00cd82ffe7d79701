package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/kwrank"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Analyzer kwrank.Analyzer
	Limiter  kwrank.DomainLimiter
	Analyses kwrank.AnalysisService
	Writer   kwrank.AnalysisWriter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB       string `name:"db" env:"KWRANK_DB" default:"${default_db}" help:"History database path"`
	LogLevel string `name:"log-level" env:"KWRANK_LOG_LEVEL" help:"Log level: debug, info, warn, error (default warn, info for serve)"`

	Analyze AnalyzeCmd `cmd:"" help:"Rank the keywords of one or more web pages"`
	Serve   ServeCmd   `cmd:"" help:"Serve the keyword API over HTTP"`
	History HistoryCmd `cmd:"" help:"List saved analyses"`
	Show    ShowCmd    `cmd:"" help:"Show a saved analysis"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a saved analysis"`
}

// PipelineFlags configures how pages are fetched and cleaned.
type PipelineFlags struct {
	Extractor string        `enum:"paragraphs,trafilatura,readability" default:"paragraphs" help:"Narrow pages before paragraph extraction (paragraphs, trafilatura, readability)"`
	Render    bool          `help:"Render pages in headless Chrome before extraction"`
	Timeout   time.Duration `default:"10s" help:"Per-page fetch timeout"`
}

// AnalyzeCmd is the "analyze" subcommand.
type AnalyzeCmd struct {
	URLs []string `arg:"" name:"url" help:"Page URLs to analyze"`

	PipelineFlags `embed:""`

	Top         int     `default:"25" help:"Number of keywords per page"`
	Concurrency int     `short:"c" default:"4" help:"Pages analyzed in parallel"`
	RPS         float64 `name:"rps" default:"1" help:"Requests per second per host (0 for unlimited)"`
	JSON        bool    `name:"json" help:"Print analyses as JSON"`
	Save        bool    `help:"Save analyses to the history database"`
	Out         string  `type:"path" help:"Export analyses as JSON files under this directory"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr   string   `env:"KWRANK_ADDR" default:":8000" help:"Listen address"`
	Origin []string `help:"Allowed CORS origin (repeatable, defaults to local dev servers)"`

	PipelineFlags `embed:""`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	URL   string `name:"url" help:"Only show analyses of this URL"`
	Limit int    `short:"n" default:"20" help:"Maximum number of analyses"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID   string `arg:"" help:"Analysis ID"`
	JSON bool   `name:"json" help:"Print the analysis as JSON"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Analysis ID"`
	Force bool   `help:"Confirm deletion"`
}
