package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/kwrank"
)

// historyPreview is the number of keywords shown per history line.
const historyPreview = 3

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := kwrank.AnalysisFilter{Limit: c.Limit}
	if c.URL != "" {
		filter.SourceURL = &c.URL
	}

	analyses, err := deps.Analyses.FindAnalyses(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	if len(analyses) == 0 {
		fmt.Fprintln(deps.Stdout, "No analyses found. Use 'kwrank analyze --save' to record one.")
		return nil
	}

	for _, a := range analyses {
		words := make([]string, 0, historyPreview)
		for i, kw := range a.Keywords {
			if i == historyPreview {
				break
			}
			words = append(words, kw.Word)
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s  %s\n",
			a.ID, a.AnalyzedAt.Local().Format(time.DateTime), a.Status, a.SourceURL, strings.Join(words, ", "))
	}
	return nil
}

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	a, err := deps.Analyses.FindAnalysisByID(deps.Ctx, c.ID)
	if err != nil {
		if kwrank.ErrorCode(err) == kwrank.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: analysis %q not found. Use 'kwrank history' to see saved analyses.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(a)
	}

	printAnalysis(deps, a)
	fmt.Fprintf(deps.Stdout, "\nanalyzed: %s\n", a.AnalyzedAt.Local().Format(time.DateTime))
	if a.Error != "" {
		fmt.Fprintf(deps.Stdout, "error: %s\n", a.Error)
	}
	return nil
}
