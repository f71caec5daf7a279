// Package naming derives output file names from input paths.
package naming
