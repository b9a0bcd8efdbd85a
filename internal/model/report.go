package model

import "time"

// StrategyKind names a generation strategy.
type StrategyKind string

const (
	// StrategyTemplate renders pages in-process and splices them into the compiled shell.
	StrategyTemplate StrategyKind = "template"
	// StrategyHeadless snapshots pages from a headless browser pointed at the built site.
	StrategyHeadless StrategyKind = "headless"
)

// RunState tracks the lifecycle of a generation run.
type RunState int

const (
	// NotStarted is the state before preconditions are checked.
	NotStarted RunState = iota
	// Running means at least the preconditions are being processed.
	Running
	// Succeeded means every route was written.
	Succeeded
	// Failed means the run stopped on an error.
	Failed
)

func (s RunState) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case Running:
		return "running"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// RouteResult holds the outcome of generating a single route.
type RouteResult struct {
	Route string `json:"route"`
	File  Path   `json:"file"`
	Bytes int    `json:"bytes"`
	Hash  string `json:"sha256,omitempty"`

	// Diff is only set on dry runs.
	Diff    string `json:"-"`
	Changed bool   `json:"-"`
}

// Summary describes a whole generation run.
type Summary struct {
	RunID    string
	Strategy StrategyKind
	State    RunState
	DryRun   bool
	Started  time.Time
	Finished time.Time
	Routes   []RouteResult
}

// Manifest is the persisted record of a successful run.
type Manifest struct {
	RunID       string        `json:"run_id"`
	Strategy    StrategyKind  `json:"strategy"`
	State       string        `json:"state"`
	GeneratedAt time.Time     `json:"generated_at"`
	Routes      []RouteResult `json:"routes"`
}

// Manifest converts the summary into its persisted form.
func (s Summary) Manifest() Manifest {
	return Manifest{
		RunID:       s.RunID,
		Strategy:    s.Strategy,
		State:       s.State.String(),
		GeneratedAt: s.Finished,
		Routes:      s.Routes,
	}
}

// Lookup returns the manifest entry for route.
func (m Manifest) Lookup(route string) (RouteResult, bool) {
	for _, r := range m.Routes {
		if r.Route == route {
			return r, true
		}
	}

	return RouteResult{}, false
}
