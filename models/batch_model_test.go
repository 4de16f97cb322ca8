package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBatch_ProgressPercent(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	batch := &Batch{StartDate: start, EndDate: start.AddDate(0, 0, 10)}

	assert.Equal(t, 0.0, batch.ProgressPercent(start.AddDate(0, 0, -1)))
	assert.Equal(t, 0.0, batch.ProgressPercent(start))
	assert.Equal(t, 50.0, batch.ProgressPercent(start.AddDate(0, 0, 5)))
	assert.Equal(t, 100.0, batch.ProgressPercent(start.AddDate(0, 0, 10)))
	assert.Equal(t, 100.0, batch.ProgressPercent(start.AddDate(0, 1, 0)))
}

func TestBatch_ProgressPercent_DegenerateDates(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	batch := &Batch{StartDate: start, EndDate: start}

	// A single-day batch is pending before its date and done once it passes.
	assert.Equal(t, 0.0, batch.ProgressPercent(start.AddDate(0, 0, -1)))
	assert.Equal(t, 100.0, batch.ProgressPercent(start))
	assert.Equal(t, 100.0, batch.ProgressPercent(start.AddDate(0, 0, 1)))
}

func TestBatch_HasCapacity(t *testing.T) {
	batch := &Batch{MaxStudents: 2, CurrentStudents: 1}
	assert.True(t, batch.HasCapacity())

	batch.CurrentStudents = 2
	assert.False(t, batch.HasCapacity())
}
