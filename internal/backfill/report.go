package backfill

import (
	"fmt"
	"strings"
	"time"
)

// Kind names the job that produced a report.
type Kind string

const (
	KindPopulate Kind = "populate"
	KindUpdate   Kind = "update"
)

// Outcome classifies what happened to one symbol.
type Outcome string

const (
	OutcomeAdded   Outcome = "added"
	OutcomeSkipped Outcome = "skipped"
	OutcomeCurrent Outcome = "current"
	OutcomeFailed  Outcome = "failed"
)

type SymbolResult struct {
	Symbol  string
	Outcome Outcome
	Bars    int
	// Date is the newest bar written or already stored (update only).
	Date string
	Err  error
}

// Report summarises a job run.
type Report struct {
	RunID   string
	Kind    Kind
	Started time.Time
	Elapsed time.Duration
	Results []SymbolResult
}

func (r *Report) add(res SymbolResult) {
	r.Results = append(r.Results, res)
}

// Count returns how many symbols ended with outcome.
func (r *Report) Count(outcome Outcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == outcome {
			n++
		}
	}
	return n
}

// BarsWritten totals rows upserted during the run.
func (r *Report) BarsWritten() int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == OutcomeAdded {
			n += res.Bars
		}
	}
	return n
}

// Failed lists symbols that failed, in processing order.
func (r *Report) Failed() []string {
	var out []string
	for _, res := range r.Results {
		if res.Outcome == OutcomeFailed {
			out = append(out, res.Symbol)
		}
	}
	return out
}

// Lines renders the human summary printed at the end of a run.
func (r *Report) Lines() []string {
	lines := []string{
		fmt.Sprintf("%s run %s", r.Kind, r.RunID),
	}
	switch r.Kind {
	case KindUpdate:
		lines = append(lines, fmt.Sprintf("updated: %d | current: %d | failed: %d",
			r.Count(OutcomeAdded), r.Count(OutcomeCurrent), r.Count(OutcomeFailed)))
	default:
		lines = append(lines, fmt.Sprintf("success: %d | skipped: %d | failed: %d | bars: %d",
			r.Count(OutcomeAdded), r.Count(OutcomeSkipped), r.Count(OutcomeFailed), r.BarsWritten()))
	}
	if failed := r.Failed(); len(failed) > 0 {
		lines = append(lines, "failed symbols: "+strings.Join(failed, ", "))
	}
	lines = append(lines, fmt.Sprintf("elapsed: %s", r.Elapsed.Round(time.Second)))
	return lines
}
