// Package mediainfo derives technical media attributes for a record: exact
// values parsed from the embedded metadata fragment when one is present,
// best-effort estimates from the name and file size when it is absent.
// Estimation never fails; a miss yields the Null sentinel and a log entry.
package mediainfo
