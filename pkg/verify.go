package casetree

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/charmap"
)

// runVerify is the post-run existence check: one pass over the
// verification CSV, whose rows name (identifier, subdir, filename)
// triples expected to exist under the work root. It mutates nothing;
// absent files become ERROR_MISSING_FILE records with the computed
// path as detail.
//
// The file comes from a legacy system and is Windows-1252 encoded,
// unlike the other inputs. Rows with fewer than three columns are
// logged and skipped, not routed to the sink; that asymmetry is
// historical behavior that downstream reporting depends on.
func (r *Runner) runVerify() error {
	sink, err := OpenErrorSink(r.cfg.VerifyErrCSV)
	if err != nil {
		return err
	}
	defer sink.Close()

	f, err := os.Open(r.cfg.VerifyCSV)
	if err != nil {
		return fmt.Errorf("failed to open verification CSV %s: %w", r.cfg.VerifyCSV, err)
	}
	defer f.Close()

	reader := csv.NewReader(charmap.Windows1252.NewDecoder().Reader(f))
	reader.FieldsPerRecord = -1

	header := true
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		// The header is the first physical line, parsed or not;
		// a malformed header must not shift the skip onto the
		// first data row.
		wasHeader := header
		header = false
		if err != nil {
			r.log.Warnf("Skipping malformed row in %s: %v", r.cfg.VerifyCSV, err)
			continue
		}
		if wasHeader {
			continue
		}
		r.Verify.Rows++

		if len(row) < 3 {
			r.log.Warnf("Skipping verification row with %d columns (need 3): %v", len(row), row)
			continue
		}
		id, subdir, filename := row[0], row[1], row[2]

		path := DerivePath(r.cfg.WorkRoot, id, subdir, filename)
		if _, err := os.Stat(path); err != nil {
			r.Verify.Errors++
			if serr := sink.Record(id, ErrMissingFile, path); serr != nil {
				return serr
			}
			continue
		}
		r.Verify.Accepted++
	}
}
