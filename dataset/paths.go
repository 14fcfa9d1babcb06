// Package dataset drives a batch run: it lists an input folder, transforms
// every image and writes the results into a timestamped dataset folder.
package dataset

import (
	"path/filepath"
	"time"
)

// TimestampLayout formats a batch start time as YYYYMMDDHHMMSS.
const TimestampLayout = "20060102150405"

// Timestamp returns the sortable folder name for a batch started at t.
func Timestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// OutputDir returns <root>/<Timestamp(started)>.
func OutputDir(root string, started time.Time) string {
	return filepath.Join(root, Timestamp(started))
}

// Job is one image to process.
type Job struct {
	// InputPath is the source image.
	InputPath string
	// OutputPath is the destination, keeping the source base name.
	OutputPath string
}

// NewJob relocates inputPath under outputDir, keeping its file name.
func NewJob(inputPath, outputDir string) Job {
	return Job{
		InputPath:  inputPath,
		OutputPath: filepath.Join(outputDir, filepath.Base(inputPath)),
	}
}
