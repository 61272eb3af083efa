package casetree

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// StageStats counts the fate of every row in one stage. Accepted
// counts rows that produced no error records at all; Errors counts
// error records, of which one row may produce several.
type StageStats struct {
	Rows     int
	Accepted int
	Errors   int
}

// Runner drives the batch run: the primary stage, the nested stage,
// and the optional existence-check pass, one row at a time in file
// order. It owns all run state; nothing here is package-level.
type Runner struct {
	cfg *Config
	log *Logger
	reg *Registry

	// Per-stage stats, populated as stages complete
	Primary StageStats
	Nested  StageStats
	Verify  StageStats
}

// NewRunner returns a Runner for one batch run
func NewRunner(cfg *Config, log *Logger) *Runner {
	return &Runner{
		cfg: cfg,
		log: log,
		reg: NewRegistry(),
	}
}

// Run executes the stages in order. Per-row problems are recorded in
// the stage's error CSV and never abort the run; the returned error
// is reserved for environment failures (unreadable input, unwritable
// error sink).
func (r *Runner) Run() error {
	r.log.Infof("Reading main CSV...")
	if err := r.runPrimary(); err != nil {
		return err
	}
	r.log.Infof("Primary stage complete: %d rows, %d accepted, %d errors",
		r.Primary.Rows, r.Primary.Accepted, r.Primary.Errors)

	r.log.Infof("Reading nested CSV...")
	if err := r.runNested(); err != nil {
		return err
	}
	r.log.Infof("Nested stage complete: %d rows, %d accepted, %d errors",
		r.Nested.Rows, r.Nested.Accepted, r.Nested.Errors)

	if r.cfg.VerifyCSV != "" {
		r.log.Infof("Reading verification CSV...")
		if err := r.runVerify(); err != nil {
			return err
		}
		r.log.Infof("Verification complete: %d rows, %d present, %d missing",
			r.Verify.Rows, r.Verify.Accepted, r.Verify.Errors)
	}
	return nil
}

// forEachRow streams rows of the CSV at path through fn. Ragged rows
// are allowed; fields-per-record is not enforced. A non-nil error
// from fn aborts the stage (fn returns errors only for sink
// failures, never for bad data).
func (r *Runner) forEachRow(path string, fn func(row []string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open input CSV %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	// Legacy inputs contain stray quotes inside identifiers; they
	// are data, not quoting syntax, and every row must surface to
	// validation rather than vanish at the parser.
	reader.LazyQuotes = true
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			// Malformed CSV line; skip, never abort the stage
			r.log.Warnf("Skipping malformed row in %s: %v", path, err)
			continue
		}
		if err := fn(row); err != nil {
			return err
		}
	}
}

// runPrimary materializes one case folder per accepted identifier
// and copies its staged homepage folder, when one exists.
func (r *Runner) runPrimary() error {
	sink, err := OpenErrorSink(r.cfg.MainErrCSV)
	if err != nil {
		return err
	}
	defer sink.Close()

	return r.forEachRow(r.cfg.MainCSV, func(row []string) error {
		r.Primary.Rows++

		id := row[0]
		if err := ValidateIdentifier(id); err != nil {
			r.Primary.Errors++
			r.log.Warnf("Rejecting primary row: %v", err)
			return sink.Record(id, ErrInvalidIdentifier, err.Error())
		}
		if r.reg.Seen(StagePrimary, id) {
			r.Primary.Errors++
			return sink.Record(id, ErrDuplicateEntry, StagePrimary)
		}
		r.reg.Mark(StagePrimary, id)

		caseDir := DerivePath(r.cfg.WorkRoot, id)
		homeDir := DerivePath(r.cfg.WorkRoot, id, r.cfg.Folder1)
		gateDir := DerivePath(r.cfg.WorkRoot, id, r.cfg.Folder2)
		errsBefore := r.Primary.Errors
		for _, dir := range []string{caseDir, homeDir, gateDir} {
			r.log.Infof("Creating path: %s", dir)
			outcome, err := EnsureDir(dir, true)
			if err != nil {
				r.Primary.Errors++
				return sink.Record(id, ErrOSError, err.Error())
			}
			if outcome == DirAlreadyExists {
				r.log.Warnf("Attempted to create %s, but it already exists!", dir)
			}
		}

		src := filepath.Join(r.cfg.SourceMain, id)
		if err := r.copyInto(sink, &r.Primary, id, src, homeDir); err != nil {
			return err
		}
		// A row counts as accepted only when fully clean, so the
		// stage summary adds up.
		if r.Primary.Errors == errsBefore {
			r.Primary.Accepted++
		}
		return nil
	})
}

// runNested copies each accepted sub-identifier's staged folder into
// the parent identifier's gate directory. Identifiers must have been
// accepted by the primary stage; sub-identifiers are deduplicated
// globally across parents.
func (r *Runner) runNested() error {
	sink, err := OpenErrorSink(r.cfg.NestedErrCSV)
	if err != nil {
		return err
	}
	defer sink.Close()

	return r.forEachRow(r.cfg.NestedCSV, func(row []string) error {
		r.Nested.Rows++

		id := row[0]
		if err := ValidateIdentifier(id); err != nil {
			r.Nested.Errors++
			r.log.Warnf("Rejecting nested row: %v", err)
			return sink.Record(id, ErrInvalidIdentifier, err.Error())
		}
		// Referential integrity against the primary stage; a row
		// that fails here has no filesystem side effects at all.
		if !r.reg.Seen(StagePrimary, id) {
			r.Nested.Errors++
			return sink.Record(id, ErrEntryMissingFromFirstCSV, id)
		}

		subIDs := make([]string, 0, len(row)-1)
		for _, s := range row[1:] {
			if s != "" {
				subIDs = append(subIDs, s)
			}
		}
		if len(subIDs) == 0 {
			r.Nested.Errors++
			return sink.Record(id, ErrNoEntries, "row has no sub-identifier columns")
		}

		if r.reg.Seen(StageNested, id) {
			r.Nested.Errors++
			return sink.Record(id, ErrDuplicateEntry, StageNested)
		}
		r.reg.Mark(StageNested, id)

		errsBefore := r.Nested.Errors
		for _, sub := range subIDs {
			if err := r.processSubID(sink, id, sub); err != nil {
				return err
			}
		}
		if r.Nested.Errors == errsBefore {
			r.Nested.Accepted++
		}
		return nil
	})
}

// processSubID handles one sub-identifier of an accepted nested row
func (r *Runner) processSubID(sink *ErrorSink, id, sub string) error {
	if err := ValidateIdentifier(sub); err != nil {
		r.Nested.Errors++
		r.log.Warnf("Rejecting sub-identifier of %s: %v", id, err)
		return sink.Record(sub, ErrInvalidIdentifier, err.Error())
	}
	if r.reg.Seen(StageSubID, sub) {
		r.Nested.Errors++
		return sink.Record(sub, ErrDuplicateSubID, id)
	}
	r.reg.Mark(StageSubID, sub)

	dst := DerivePath(r.cfg.WorkRoot, id, r.cfg.Folder2, sub)
	r.log.Infof("Creating path: %s", dst)
	// The gate directory was scaffolded by the primary stage, so
	// ancestors are not created here; a missing parent means the
	// primary row itself failed and is routed to the sink.
	outcome, err := EnsureDir(dst, false)
	if err != nil {
		r.Nested.Errors++
		return sink.Record(sub, ErrOSError, err.Error())
	}
	switch outcome {
	case DirParentMissing:
		r.Nested.Errors++
		return sink.Record(sub, ErrOSError, fmt.Sprintf("parent directory missing for %s", dst))
	case DirAlreadyExists:
		r.log.Warnf("Attempted to create %s, but it already exists!", dst)
	}

	src := filepath.Join(r.cfg.SourceNested, sub)
	return r.copyInto(sink, &r.Nested, sub, src, dst)
}

// copyInto runs one copy attempt and routes any non-success outcome
// to the sink under the subject identifier.
func (r *Runner) copyInto(sink *ErrorSink, stats *StageStats, subject, src, dst string) error {
	outcome, err := CopyTree(src, dst)
	switch outcome {
	case CopySourceMissing:
		stats.Errors++
		r.log.Warnf("Copy source %s does not exist", src)
		return sink.Record(subject, ErrFileNotExist, src)
	case CopyFailed:
		stats.Errors++
		r.log.Errorf("Copy of %s failed: %v", src, err)
		return sink.Record(subject, ErrOSError, err.Error())
	default:
		r.log.Infof("Copied %s to %s", src, dst)
		return nil
	}
}
