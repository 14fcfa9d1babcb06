package dataset

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nvr-ai/squarepad/images"
	"github.com/nvr-ai/squarepad/preprocess"
	"github.com/nvr-ai/squarepad/util"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
)

// Options configures a batch run. It is fixed when the batch is created.
type Options struct {
	// InputDir is the folder whose entries are processed, non-recursively.
	InputDir string
	// DatasetRoot is the parent of the timestamped output folder.
	DatasetRoot string
	// Started is the batch start time, used to name the output folder.
	Started time.Time
	// Extensions, when non-empty, restricts processing to files with one of
	// these extensions. Entries are matched case-insensitively.
	Extensions []string
	// FailFast aborts the batch on the first failed image instead of logging
	// it and moving on.
	FailFast bool
	// Progress receives a progress bar when non-nil.
	Progress io.Writer
}

// Report summarizes a batch run.
type Report struct {
	// OutputDir is the folder the images were written to.
	OutputDir string
	// Attempted counts files that were decoded or failed to decode.
	Attempted int
	// Succeeded counts files written to OutputDir.
	Succeeded int
	// Skipped counts directories and files excluded by extension.
	Skipped int
	// Failed counts files that could not be processed.
	Failed int
	// Errors holds the categorized failures.
	Errors *ErrorStats
}

// Summary returns a human-readable description of the run.
func (r *Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Processed %d/%d image(s) into %s", r.Succeeded, r.Attempted, r.OutputDir)
	if r.Skipped > 0 {
		fmt.Fprintf(&b, " (%d entries skipped)", r.Skipped)
	}
	b.WriteString("\n")
	if r.Errors != nil {
		b.WriteString(r.Errors.GenerateReport())
	}
	return b.String()
}

// Batch processes every image of an input folder sequentially.
type Batch struct {
	opts         Options
	outputDir    string
	extensions   map[string]bool
	preprocessor *preprocess.Preprocessor
	codec        *images.Codec
	logger       zerolog.Logger
}

// NewBatch validates the options and prepares a batch. No file is touched
// until Run is called.
//
// Arguments:
//   - opts: The batch options.
//   - p: The transform applied to every image.
//   - codec: The codec used to read and write images.
//   - logger: Receives per-image events.
//
// Returns:
//   - *Batch: The prepared batch.
//   - error: ErrConfig if the input folder is missing or not a directory,
//     the dataset root is empty, or the start time is unset.
func NewBatch(opts Options, p *preprocess.Preprocessor, codec *images.Codec, logger zerolog.Logger) (*Batch, error) {
	if p == nil || codec == nil {
		return nil, errors.Wrap(ErrConfig, "preprocessor and codec are required")
	}
	if err := util.CheckDir(opts.InputDir); err != nil {
		return nil, errors.Wrapf(ErrConfig, "input folder: %v", err)
	}
	if opts.DatasetRoot == "" {
		return nil, errors.Wrap(ErrConfig, "dataset root is empty")
	}
	if opts.Started.IsZero() {
		return nil, errors.Wrap(ErrConfig, "batch start time is unset")
	}

	var extensions map[string]bool
	if len(opts.Extensions) > 0 {
		extensions = make(map[string]bool, len(opts.Extensions))
		for _, ext := range opts.Extensions {
			ext = strings.ToLower(strings.TrimSpace(ext))
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			extensions[ext] = true
		}
	}

	return &Batch{
		opts:         opts,
		outputDir:    OutputDir(opts.DatasetRoot, opts.Started),
		extensions:   extensions,
		preprocessor: p,
		codec:        codec,
		logger:       logger,
	}, nil
}

// OutputDir returns the folder this batch writes to.
func (b *Batch) OutputDir() string {
	return b.outputDir
}

// Run processes every entry of the input folder.
//
// Directories are skipped. With FailFast unset, an image that fails is logged,
// recorded in the report and the batch continues; otherwise Run stops and
// returns the error.
//
// Returns:
//   - *Report: The run summary, also returned alongside a FailFast error.
//   - error: ErrConfig if the input folder cannot be listed, or the first
//     *ProcessError under FailFast.
func (b *Batch) Run() (*Report, error) {
	entries, err := util.ListEntries(b.opts.InputDir)
	if err != nil {
		return nil, errors.Wrapf(ErrConfig, "input folder: %v", err)
	}

	report := &Report{OutputDir: b.outputDir, Errors: NewErrorStats()}

	jobs := make([]Job, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir {
			b.logger.Debug().Str("path", entry.Path).Msg("skipping directory")
			report.Skipped++
			continue
		}
		if b.extensions != nil && !b.extensions[strings.ToLower(filepath.Ext(entry.Name))] {
			b.logger.Debug().Str("path", entry.Path).Msg("skipping file with unlisted extension")
			report.Skipped++
			continue
		}
		jobs = append(jobs, NewJob(entry.Path, b.outputDir))
	}

	b.logger.Info().
		Str("input", b.opts.InputDir).
		Str("output", b.outputDir).
		Int("images", len(jobs)).
		Msg("starting batch")

	bar := b.newProgressBar(len(jobs))

	for _, job := range jobs {
		report.Attempted++

		res, err := b.ProcessImage(job)
		if bar != nil {
			_ = bar.Add(1)
		}
		if err != nil {
			procErr := CategorizeError(job.InputPath, err)
			report.Failed++
			report.Errors.Add(procErr)

			if b.opts.FailFast {
				if bar != nil {
					_ = bar.Exit()
				}
				return report, procErr
			}

			b.logger.Warn().
				Err(procErr.OriginalErr).
				Str("path", job.InputPath).
				Str("category", string(procErr.Category)).
				Msg("skipping image")
			continue
		}

		report.Succeeded++
		b.logger.Debug().
			Str("path", job.InputPath).
			Str("output", job.OutputPath).
			Stringer("geometry", res).
			Msg("processed image")
	}

	if bar != nil {
		_ = bar.Finish()
	}

	b.logger.Info().
		Int("succeeded", report.Succeeded).
		Int("failed", report.Failed).
		Int("skipped", report.Skipped).
		Msg("batch complete")

	return report, nil
}

// ProcessImage decodes, transforms and writes a single image.
//
// Arguments:
//   - job: The input and output paths.
//
// Returns:
//   - preprocess.Result: The transform geometry.
//   - error: Wrapping images.ErrDecode, images.ErrEncode or a transform error.
func (b *Batch) ProcessImage(job Job) (preprocess.Result, error) {
	img, err := b.codec.Decode(job.InputPath)
	if err != nil {
		return preprocess.Result{}, err
	}

	square, res, err := b.preprocessor.Process(img)
	if err != nil {
		return preprocess.Result{}, err
	}

	if err := os.MkdirAll(filepath.Dir(job.OutputPath), 0o755); err != nil {
		return preprocess.Result{}, errors.Wrapf(images.ErrEncode, "create output folder: %v", err)
	}

	if err := b.codec.Encode(square, job.OutputPath); err != nil {
		return preprocess.Result{}, err
	}

	return res, nil
}

func (b *Batch) newProgressBar(total int) *progressbar.ProgressBar {
	if b.opts.Progress == nil || total == 0 {
		return nil
	}

	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(b.opts.Progress),
		progressbar.OptionSetDescription("processing"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetItsString("images"),
		progressbar.OptionShowIts(),
		progressbar.OptionClearOnFinish(),
	)
}
