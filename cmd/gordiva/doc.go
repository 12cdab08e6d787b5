// Command gordiva migrates asset metadata from the Gorilla MAM and the
// Diva tape archive into Dalet: it merges the two exports, cleans and
// classifies the records, persists the batch, and stages check-in
// descriptors and proxies for the Dalet watch folder.
package main
