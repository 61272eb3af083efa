package casetree

// ErrorKind classifies why an input record was rejected or why a
// filesystem operation on its behalf failed. The string form is what
// lands in the error CSVs, so values are stable identifiers, not
// display text.
type ErrorKind int

const (
	// ErrDuplicateEntry means the identifier was already accepted
	// earlier in the same stage.
	ErrDuplicateEntry ErrorKind = iota

	// ErrDuplicateSubID means the sub-identifier was already copied
	// for some identifier earlier in the run. Dedup is global, not
	// per parent.
	ErrDuplicateSubID

	// ErrNoEntries means a nested row had no sub-identifier columns.
	ErrNoEntries

	// ErrEntryMissingFromFirstCSV means a nested row referenced an
	// identifier the primary stage never accepted.
	ErrEntryMissingFromFirstCSV

	// ErrFileNotExist means the copy source folder does not exist.
	ErrFileNotExist

	// ErrOSError means a filesystem operation failed for a reason
	// other than a missing copy source.
	ErrOSError

	// ErrMissingFile means the post-run existence check found a
	// referenced file absent from the materialized tree.
	ErrMissingFile

	// ErrInvalidIdentifier means the identifier contains path
	// separators, traversal sequences, or other bytes that could
	// escape the work root.
	ErrInvalidIdentifier
)

// String returns the stable identifier written to error CSVs
func (k ErrorKind) String() string {
	switch k {
	case ErrDuplicateEntry:
		return "DUPLICATE_ENTRY"
	case ErrDuplicateSubID:
		return "DUPLICATE_SUBID"
	case ErrNoEntries:
		return "NO_ENTRIES"
	case ErrEntryMissingFromFirstCSV:
		return "ENTRY_MISSING_FROM_FIRST_CSV"
	case ErrFileNotExist:
		return "FILE_NOT_EXIST"
	case ErrOSError:
		return "OS_ERROR"
	case ErrMissingFile:
		return "ERROR_MISSING_FILE"
	case ErrInvalidIdentifier:
		return "INVALID_IDENTIFIER"
	default:
		return "UNKNOWN"
	}
}
