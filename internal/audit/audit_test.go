// internal/audit/audit_test.go
package audit

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelfkeeper/internal/catalog"
	"shelfkeeper/internal/snapshot"
	"shelfkeeper/internal/storage"
)

func intp(v int) *int { return &v }

func cleanSnapshot() *snapshot.Snapshot {
	return &snapshot.Snapshot{
		Units:   []storage.Unit{{Name: "A", Capacity: intp(10)}},
		Shelves: []storage.Shelf{{Name: "1", PlacardName: "A", Capacity: intp(5)}},
		Books: []catalog.Book{
			{ID: uuid.New(), Placard: "A", Shelf: "1", Count: 5, ISBN: "9782070612758"},
		},
	}
}

func findingsByName(r *Report) map[string]Finding {
	out := make(map[string]Finding, len(r.Findings))
	for _, f := range r.Findings {
		out[f.Check] = f
	}
	return out
}

func TestThresholdHolds(t *testing.T) {
	tests := []struct {
		op    string
		value float64
		want  bool
	}{
		{">", 1, true},
		{"<", 1, false},
		{">=", 0, true},
		{"<=", 0, true},
		{"==", 0, true},
		{"==", 1, false},
		{"~", 0, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Threshold{Operator: tt.op, Value: 0}.Holds(tt.value), "%g %s 0", tt.value, tt.op)
	}
}

func TestRunCleanSnapshot(t *testing.T) {
	a := NewAuditor()
	a.RegisterDefaults()
	require.Len(t, a.Checks(), 5)
	assert.Nil(t, a.Last())

	report := a.Run(context.Background(), cleanSnapshot())

	assert.True(t, report.Passed)
	assert.Empty(t, report.Failed())
	assert.Len(t, report.Findings, 5)
	assert.Same(t, report, a.Last())
}

func TestRunFindsDrift(t *testing.T) {
	snap := cleanSnapshot()
	orphanBook := catalog.Book{ID: uuid.New(), Placard: "A", Shelf: "9", Count: 1}
	goneUnitBook := catalog.Book{ID: uuid.New(), Placard: "Gone", Shelf: "1", Count: 1}
	snap.Books = append(snap.Books,
		orphanBook,
		goneUnitBook,
		catalog.Book{ID: uuid.New(), Placard: "A", Shelf: "1", Count: 1, ISBN: "12345"},
	)
	snap.Shelves = append(snap.Shelves, storage.Shelf{Name: "1", PlacardName: "Gone"})

	a := NewAuditor()
	a.RegisterDefaults()
	report := a.Run(context.Background(), snap)

	assert.False(t, report.Passed)
	byName := findingsByName(report)

	assert.Equal(t, float64(2), byName["dangling-placements"].Value)
	assert.Len(t, byName["dangling-placements"].Offenders, 2)
	assert.Equal(t, float64(1), byName["orphan-shelves"].Value)
	assert.Equal(t, []string{"Gone/1"}, byName["orphan-shelves"].Offenders)
	assert.Equal(t, float64(1), byName["shelves-over-capacity"].Value)
	assert.Equal(t, []string{"A/1 (6/5)"}, byName["shelves-over-capacity"].Offenders)
	assert.True(t, byName["placards-over-capacity"].Passed, "7 copies fit in 10")
	assert.Equal(t, float64(1), byName["invalid-isbns"].Value)
	assert.Equal(t, "== 0", byName["invalid-isbns"].Expected)
	assert.Len(t, report.Failed(), 4)
}

func TestRegisterCustomCheck(t *testing.T) {
	a := NewAuditor()
	a.Register(Check{
		Name:      "has-books",
		Threshold: Threshold{Operator: ">", Value: 0},
		Measure: func(s *snapshot.Snapshot) Measurement {
			return Measurement{Value: float64(len(s.Books))}
		},
	})

	assert.False(t, a.Run(context.Background(), &snapshot.Snapshot{}).Passed)
	assert.True(t, a.Run(context.Background(), cleanSnapshot()).Passed)
}
