//go:build !linux

package dupcmp

import "io"

func writeLines(w io.Writer, lines [][]byte) error {
	return writeSequential(w, lines)
}
