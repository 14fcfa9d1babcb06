package dataset

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimestamp(t *testing.T) {
	started := time.Date(2024, time.March, 5, 7, 8, 9, 123, time.UTC)
	assert.Equal(t, "20240305070809", Timestamp(started))
	assert.Equal(t, filepath.Join("dataset", "20240305070809"), OutputDir("dataset", started))
}

func TestTimestampSortsChronologically(t *testing.T) {
	a := time.Date(2023, time.December, 31, 23, 59, 59, 0, time.UTC)
	b := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.Less(t, Timestamp(a), Timestamp(b))
}

func TestNewJob(t *testing.T) {
	job := NewJob(filepath.Join("in", "photo.JPG"), filepath.Join("dataset", "20240101000000"))
	assert.Equal(t, filepath.Join("in", "photo.JPG"), job.InputPath)
	assert.Equal(t, filepath.Join("dataset", "20240101000000", "photo.JPG"), job.OutputPath)
}
