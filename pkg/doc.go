// Package casetree materializes a case-folder directory tree from
// CSV manifests and populates it by copying staged source folders,
// recording every duplicate, malformed, or unmatched record in
// per-stage error CSVs.
//
// # Core API
//
// A batch run is driven by a Runner built from a loaded Config:
//
//	cfg, err := casetree.LoadConfig("config.ini")
//	log, err := casetree.NewLogger(cfg.LogFile, casetree.ParseLogLevel(cfg.LogLevel))
//	defer log.Close()
//	runner := casetree.NewRunner(cfg, log)
//	err = runner.Run()
//
// Run processes the primary CSV (one case folder per identifier),
// then the nested CSV (sub-identifier folders copied under each
// case's gate directory), then optionally verifies a third CSV's
// (identifier, subdir, filename) triples against the tree.
//
// # Error model
//
// Configuration problems are fatal before any stage runs. Bad data
// never is: each rejected row becomes one row in the stage's error
// CSV, classified by ErrorKind, and processing continues.
package casetree
