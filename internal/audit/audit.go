// internal/audit/audit.go

// Package audit measures how far the catalogs have drifted from a clean
// state. Deletions never cascade, so books and shelves can be left pointing
// at units and shelves that no longer exist; the auditor counts them.
package audit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"shelfkeeper/internal/snapshot"
)

// Check is one integrity measurement with the threshold it must satisfy.
type Check struct {
	Name        string
	Description string
	Measure     func(*snapshot.Snapshot) Measurement
	Threshold   Threshold
}

// Measurement is a check's value and the records responsible for it.
type Measurement struct {
	Value     float64
	Offenders []string
}

type Threshold struct {
	Operator string // >, <, >=, <=, ==
	Value    float64
}

// Holds reports whether value satisfies the threshold. Unknown operators never hold.
func (t Threshold) Holds(value float64) bool {
	switch t.Operator {
	case ">":
		return value > t.Value
	case "<":
		return value < t.Value
	case ">=":
		return value >= t.Value
	case "<=":
		return value <= t.Value
	case "==":
		return value == t.Value
	default:
		return false
	}
}

func (t Threshold) String() string {
	return fmt.Sprintf("%s %g", t.Operator, t.Value)
}

// Finding is the outcome of one check.
type Finding struct {
	Check       string   `json:"check"`
	Description string   `json:"description"`
	Value       float64  `json:"value"`
	Expected    string   `json:"expected"`
	Passed      bool     `json:"passed"`
	Offenders   []string `json:"offenders,omitempty"`
}

// Report is the outcome of one audit run.
type Report struct {
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`
	Passed    bool          `json:"passed"`
	Findings  []Finding     `json:"findings"`
}

// Failed returns the findings that did not pass.
func (r *Report) Failed() []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if !f.Passed {
			out = append(out, f)
		}
	}
	return out
}

// Auditor runs registered checks against snapshots.
type Auditor struct {
	tracer trace.Tracer
	mu     sync.Mutex
	checks []Check
	last   *Report
}

func NewAuditor() *Auditor {
	return &Auditor{
		tracer: otel.Tracer("shelfkeeper/audit"),
		checks: make([]Check, 0),
	}
}

// Register adds a check to the suite.
func (a *Auditor) Register(c Check) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.checks = append(a.checks, c)
}

// Checks returns a copy of the registered checks.
func (a *Auditor) Checks() []Check {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Check, len(a.checks))
	copy(out, a.checks)
	return out
}

// Last returns the most recent report, or nil before the first run.
func (a *Auditor) Last() *Report {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.last
}

// Run evaluates every check against snap.
func (a *Auditor) Run(ctx context.Context, snap *snapshot.Snapshot) *Report {
	checks := a.Checks()
	_, span := a.tracer.Start(ctx, "audit.run",
		trace.WithAttributes(attribute.Int("audit.checks", len(checks))))
	defer span.End()

	report := &Report{StartTime: time.Now(), Passed: true, Findings: make([]Finding, 0, len(checks))}
	for _, c := range checks {
		m := c.Measure(snap)
		passed := c.Threshold.Holds(m.Value)
		if !passed {
			report.Passed = false
			span.AddEvent("check_failed", trace.WithAttributes(
				attribute.String("check", c.Name),
				attribute.Float64("value", m.Value),
			))
		}
		report.Findings = append(report.Findings, Finding{
			Check:       c.Name,
			Description: c.Description,
			Value:       m.Value,
			Expected:    c.Threshold.String(),
			Passed:      passed,
			Offenders:   m.Offenders,
		})
	}
	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime)

	a.mu.Lock()
	a.last = report
	a.mu.Unlock()

	span.SetAttributes(
		attribute.Bool("audit.passed", report.Passed),
		attribute.Int("audit.failed", len(report.Failed())),
	)
	return report
}
