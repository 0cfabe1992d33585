package rating

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minerva/internal/domain/snapshot"
)

func benchSnap(ticker, sector, pe string) *snapshot.Snapshot {
	s := &snapshot.Snapshot{Ticker: ticker}
	if sector != "" {
		s.Sector = strPtr(sector)
	}
	if pe != "" {
		s.PERatioTrailing = strPtr(pe)
	}
	return s
}

func TestBenchmarkService_Refresh(t *testing.T) {
	repo := &mockSnapshotRepo{snapshots: []*snapshot.Snapshot{
		benchSnap("A", "Energy", "10"),
		benchSnap("B", "Energy", "20"),
		benchSnap("C", "Banking", "8.5"),
		benchSnap("D", "Banking", "N/A"), // unparseable, excluded
		benchSnap("E", "", "15"),         // no sector, excluded
		benchSnap("F", "Pharma", ""),     // no P/E, sector drops out
	}}

	svc := NewBenchmarkService(repo)
	require.NoError(t, svc.Refresh(context.Background()))

	benchmarks := svc.Current()
	assert.Len(t, benchmarks, 2)
	assert.InDelta(t, 15.0, benchmarks["Energy"], 0.001)
	assert.InDelta(t, 8.5, benchmarks["Banking"], 0.001)
	assert.NotContains(t, benchmarks, "Pharma")
}

func TestBenchmarkService_EmptyBeforeFirstRefresh(t *testing.T) {
	svc := NewBenchmarkService(&mockSnapshotRepo{})
	assert.Empty(t, svc.Current())
}

func TestBenchmarkService_CurrentReturnsCopy(t *testing.T) {
	repo := &mockSnapshotRepo{snapshots: []*snapshot.Snapshot{
		benchSnap("A", "Energy", "10"),
	}}

	svc := NewBenchmarkService(repo)
	require.NoError(t, svc.Refresh(context.Background()))

	first := svc.Current()
	first["Energy"] = 999

	assert.InDelta(t, 10.0, svc.Current()["Energy"], 0.001)
}

func TestBenchmarkService_RefreshReplacesTable(t *testing.T) {
	repo := &mockSnapshotRepo{snapshots: []*snapshot.Snapshot{
		benchSnap("A", "Energy", "10"),
	}}

	svc := NewBenchmarkService(repo)
	require.NoError(t, svc.Refresh(context.Background()))

	repo.snapshots = []*snapshot.Snapshot{benchSnap("B", "Pharma", "30")}
	require.NoError(t, svc.Refresh(context.Background()))

	benchmarks := svc.Current()
	assert.NotContains(t, benchmarks, "Energy")
	assert.InDelta(t, 30.0, benchmarks["Pharma"], 0.001)
}
