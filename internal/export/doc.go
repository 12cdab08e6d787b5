// Package export reads and writes the CSV files the migration passes
// through: the raw Gorilla/Diva exports, the merged table, and the parsed,
// cleaned, and final batches. All files are read and written with a UTF-8
// byte-order mark, matching what the upstream export jobs produce.
package export
