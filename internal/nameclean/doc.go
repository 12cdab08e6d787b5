// Package nameclean normalizes raw Gorilla display names and derives the
// traffic code used to group related asset versions.
package nameclean
