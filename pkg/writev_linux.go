//go:build linux

package dupcmp

import (
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/google/vectorio"
)

// writeLines hands the report to the kernel in as few writev calls as possible
// when w is a file; any other writer gets one Write per line.
func writeLines(w io.Writer, lines [][]byte) error {
	file, ok := w.(*os.File)
	if !ok {
		return writeSequential(w, lines)
	}

	for offset := 0; offset < len(lines); offset += iovMaxFallback {
		end := min(offset+iovMaxFallback, len(lines))
		chunk := lines[offset:end]

		iovecs := make([]syscall.Iovec, 0, len(chunk))
		expected := 0
		for _, line := range chunk {
			if len(line) == 0 {
				continue
			}
			iov := syscall.Iovec{Base: &line[0]}
			iov.SetLen(len(line))
			iovecs = append(iovecs, iov)
			expected += len(line)
		}
		if len(iovecs) == 0 {
			continue
		}

		nw, err := vectorio.WritevRaw(uintptr(file.Fd()), iovecs)
		if err != nil {
			return fmt.Errorf("writev failed: %w", err)
		}
		if nw < expected {
			// pipes may accept only part of a large writev
			if err := writeSequential(file, skipBytes(chunk, nw)); err != nil {
				return err
			}
		}
	}

	return nil
}

// skipBytes drops the first n bytes from a run of lines
func skipBytes(lines [][]byte, n int) [][]byte {
	for i, line := range lines {
		if n < len(line) {
			rest := make([][]byte, 0, len(lines)-i)
			rest = append(rest, line[n:])
			return append(rest, lines[i+1:]...)
		}
		n -= len(line)
	}
	return nil
}
