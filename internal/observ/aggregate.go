package observ

import (
	"strconv"
	"sync"
)

// Aggregate sums the per-file reports of a run. Phases keep the order in
// which they were first seen. Safe for concurrent use.
type Aggregate struct {
	mu     sync.Mutex
	order  []string
	totals map[string]float64
	counts map[string]int
	files  int
}

// NewAggregate creates an empty Aggregate.
func NewAggregate() *Aggregate {
	return &Aggregate{
		totals: make(map[string]float64),
		counts: make(map[string]int),
	}
}

// Merge adds one file's report. A nil report is ignored.
func (a *Aggregate) Merge(r *Report) {
	if a == nil || r == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.files++
	for _, p := range r.Phases {
		if _, seen := a.totals[p.Name]; !seen {
			a.order = append(a.order, p.Name)
		}
		a.totals[p.Name] += p.DurationMS
		a.counts[p.Name]++
	}
}

// Files returns the number of merged reports.
func (a *Aggregate) Files() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.files
}

// Totals returns the summed phases. The note of each phase holds the
// number of files that went through it.
func (a *Aggregate) Totals() Report {
	a.mu.Lock()
	defer a.mu.Unlock()
	report := Report{Phases: make([]PhaseReport, 0, len(a.order))}
	for _, name := range a.order {
		ms := a.totals[name]
		report.TotalMS += ms
		report.Phases = append(report.Phases, PhaseReport{
			Name:       name,
			DurationMS: ms,
			Note:       plural(a.counts[name], "file"),
		})
	}
	return report
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}
