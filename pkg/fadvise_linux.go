//go:build linux

package dupcmp

import (
	"os"

	"golang.org/x/sys/unix"
)

// adviseSequential tells the kernel the file will be read front to back once
func adviseSequential(f *os.File) {
	if err := unix.Fadvise(int(f.Fd()), 0, 0, unix.FADV_SEQUENTIAL); err != nil && IsDebugEnabled(DebugCompare) {
		VerboseLog(3, "fadvise %s: %v", f.Name(), err)
	}
}
