// Package enrich runs the two classification passes over a merged batch:
// the per-record enrichment pass (normalize, classify, resolve attributes,
// compose filenames) and the final reconciliation sweep that back-fills
// still-missing video attributes from sibling records and last-resort
// defaults.
package enrich
