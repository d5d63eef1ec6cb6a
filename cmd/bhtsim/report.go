package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/sarchlab/bhtsim/timing/core"
)

// formatHistory renders outcomes oldest first, T for taken and N for not.
func formatHistory(history []bool) string {
	var sb strings.Builder
	for _, h := range history {
		sb.WriteString(formatOutcome(h))
	}
	return sb.String()
}

func formatOutcome(taken bool) string {
	if taken {
		return "T"
	}
	return "N"
}

// printReport prints the per-entry table and aggregate statistics. Entries
// that never resolved a branch are listed only when all is set.
func printReport(w io.Writer, c *core.Core, instructions uint64, exitCode int64, all bool) {
	config := c.Config()
	stats := c.Stats()

	_, _ = fmt.Fprintf(w, "Exit code: %d\n", exitCode)
	_, _ = fmt.Fprintf(w, "Instructions: %d\n", instructions)
	_, _ = fmt.Fprintf(w, "BHT: %d entries, history %d, initial %s\n",
		config.NumEntries, config.HistoryLength, formatOutcome(config.InitialBias))
	_, _ = fmt.Fprintf(w, "\n")

	_, _ = fmt.Fprintf(w, "%5s  %-7s  %4s  %8s  %9s  %9s\n",
		"Index", "History", "Pred", "Correct", "Incorrect", "Precision")
	for _, e := range c.Snapshot() {
		if !all && e.Correct+e.Incorrect == 0 {
			continue
		}
		_, _ = fmt.Fprintf(w, "%5d  %-7s  %4s  %8d  %9d  %8.2f%%\n",
			e.Index, formatHistory(e.History), formatOutcome(e.Prediction),
			e.Correct, e.Incorrect, e.Precision)
	}

	_, _ = fmt.Fprintf(w, "\n")
	_, _ = fmt.Fprintf(w, "Branches resolved: %d\n", stats.Resolutions)
	_, _ = fmt.Fprintf(w, "Correct:           %d\n", stats.Correct)
	_, _ = fmt.Fprintf(w, "Mispredictions:    %d\n", stats.Mispredictions)
	_, _ = fmt.Fprintf(w, "Accuracy:          %.2f%%\n", stats.Accuracy())

	if btbStats, ok := c.BTBStats(); ok {
		_, _ = fmt.Fprintf(w, "BTB target hits:   %d / %d\n",
			stats.BTBHits, stats.BTBHits+stats.BTBMisses)
		_, _ = fmt.Fprintf(w, "BTB lookup hits:   %.2f%%\n", btbStats.HitRate())
	}

	for _, err := range c.Errors() {
		_, _ = fmt.Fprintf(w, "Predictor error: %v\n", err)
	}
}
