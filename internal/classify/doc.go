// Package classify assigns each merged record a title type and content type
// by running ordered, delimiter-bounded pattern families against the cleaned
// name, and composes target filenames for non-video classifications.
package classify
