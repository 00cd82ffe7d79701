package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fwojciec/kwrank"
	"github.com/fwojciec/kwrank/analyze"
)

// Run executes the analyze command.
//
// Pages that yield a sentinel result are not command failures; their status
// is printed alongside the keywords. Saving and exporting errors are.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	urls := make([]string, 0, len(c.URLs))
	for _, u := range c.URLs {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}
	if len(urls) == 0 {
		fmt.Fprintln(deps.Stderr, "error: at least one URL is required")
		return kwrank.Errorf(kwrank.EINVALID, "at least one URL is required")
	}
	if c.Save && deps.Analyses == nil {
		return kwrank.Errorf(kwrank.EINTERNAL, "history service not configured")
	}

	batch := &analyze.Batch{
		Analyzer:    deps.Analyzer,
		Limiter:     deps.Limiter,
		Concurrency: c.Concurrency,
	}

	var progress analyze.ProgressFunc
	if len(urls) > 1 {
		progress = func(p analyze.Progress) {
			fmt.Fprintf(deps.Stderr, "[%d/%d] %s %s\n", p.Completed, p.Total, p.Status, p.URL)
		}
	}
	analyses := batch.AnalyzeAll(deps.Ctx, urls, progress)

	if c.Save {
		for _, a := range analyses {
			if err := deps.Analyses.CreateAnalysis(deps.Ctx, a); err != nil {
				fmt.Fprintf(deps.Stderr, "error: saving %s: %s\n", a.SourceURL, errorText(err))
				return err
			}
		}
	}

	if deps.Writer != nil {
		if err := export(deps, analyses); err != nil {
			fmt.Fprintf(deps.Stderr, "error: export: %s\n", errorText(err))
			return err
		}
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(analyses)
	}
	for i, a := range analyses {
		if i > 0 {
			fmt.Fprintln(deps.Stdout)
		}
		printAnalysis(deps, a)
	}
	return nil
}

// export writes every analysis and commits, discarding partial output on
// failure.
func export(deps *Dependencies, analyses []*kwrank.Analysis) error {
	for _, a := range analyses {
		if err := deps.Writer.Save(deps.Ctx, a); err != nil {
			_ = deps.Writer.Abort()
			return err
		}
	}
	return deps.Writer.Commit()
}

// printAnalysis writes a header line followed by one keyword per line.
func printAnalysis(deps *Dependencies, a *kwrank.Analysis) {
	header := a.SourceURL
	if a.ID != "" {
		header += "  (" + a.ID + ")"
	}
	if a.Status != kwrank.StatusOK {
		header += "  [" + string(a.Status) + "]"
	}
	fmt.Fprintln(deps.Stdout, header)

	tw := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	for _, kw := range a.Keywords {
		fmt.Fprintf(tw, "  %s\t%.4f\n", kw.Word, kw.Weight)
	}
	_ = tw.Flush()
}
