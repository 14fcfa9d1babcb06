package dataset

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nvr-ai/squarepad/images"
	"github.com/nvr-ai/squarepad/preprocess"
	"github.com/pkg/errors"
)

// ErrConfig is returned when a batch cannot start: the input folder is
// missing or not a directory, or the options are invalid.
var ErrConfig = errors.New("invalid batch configuration")

// ErrorCategory represents the stage at which an image failed.
type ErrorCategory string

const (
	ErrorCategoryDecode    ErrorCategory = "decode"    // Unreadable or corrupt input
	ErrorCategoryTransform ErrorCategory = "transform" // Resize or pad rejected the image
	ErrorCategoryEncode    ErrorCategory = "encode"    // Write failure or unsupported extension
	ErrorCategoryUnknown   ErrorCategory = "unknown"
)

// ProcessError is a categorized failure of a single image.
type ProcessError struct {
	// FilePath is the input image that failed.
	FilePath string
	// Category is the stage that failed.
	Category ErrorCategory
	// OriginalErr is the underlying error.
	OriginalErr error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("[%s] %s: %v", e.Category, e.FilePath, e.OriginalErr)
}

func (e *ProcessError) Unwrap() error {
	return e.OriginalErr
}

// CategorizeError wraps err into a ProcessError based on the sentinel it
// carries. It returns nil for a nil error.
func CategorizeError(filePath string, err error) *ProcessError {
	if err == nil {
		return nil
	}

	var procErr *ProcessError
	if errors.As(err, &procErr) {
		return procErr
	}

	procErr = &ProcessError{FilePath: filePath, OriginalErr: err}
	switch {
	case errors.Is(err, images.ErrDecode):
		procErr.Category = ErrorCategoryDecode
	case errors.Is(err, images.ErrEncode):
		procErr.Category = ErrorCategoryEncode
	case errors.Is(err, preprocess.ErrInvalidImage),
		errors.Is(err, preprocess.ErrInvalidTargetSize),
		errors.Is(err, images.ErrEmptyBackground):
		procErr.Category = ErrorCategoryTransform
	default:
		procErr.Category = ErrorCategoryUnknown
	}
	return procErr
}

// maxRecentErrors bounds ErrorStats.LastErrors.
const maxRecentErrors = 5

// ErrorStats tracks per-image failures during a batch.
type ErrorStats struct {
	// Total counts every failure added.
	Total int
	// ByCategory counts failures per category.
	ByCategory map[ErrorCategory]int
	// LastErrors keeps the most recent failures, oldest first.
	LastErrors []*ProcessError
}

// NewErrorStats returns empty statistics.
func NewErrorStats() *ErrorStats {
	return &ErrorStats{
		ByCategory: make(map[ErrorCategory]int),
		LastErrors: make([]*ProcessError, 0, maxRecentErrors),
	}
}

// Add records a failure, dropping the oldest recent error when full.
func (s *ErrorStats) Add(err *ProcessError) {
	s.Total++
	s.ByCategory[err.Category]++

	if len(s.LastErrors) >= maxRecentErrors {
		s.LastErrors = s.LastErrors[1:]
	}
	s.LastErrors = append(s.LastErrors, err)
}

// GenerateReport creates a human-readable error report.
func (s *ErrorStats) GenerateReport() string {
	if s.Total == 0 {
		return ""
	}

	var report strings.Builder
	fmt.Fprintf(&report, "%d image(s) failed:\n", s.Total)

	categories := make([]string, 0, len(s.ByCategory))
	for cat := range s.ByCategory {
		categories = append(categories, string(cat))
	}
	sort.Strings(categories)
	for _, cat := range categories {
		fmt.Fprintf(&report, "  %s: %d\n", cat, s.ByCategory[ErrorCategory(cat)])
	}

	report.WriteString("Recent errors:\n")
	for i, err := range s.LastErrors {
		fmt.Fprintf(&report, "  %d. %s\n     %v\n", i+1, err.FilePath, err.OriginalErr)
	}

	return report.String()
}
