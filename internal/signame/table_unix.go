//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package signame

import (
	"sync"
	"syscall"

	"golang.org/x/sys/unix"
)


var (
	tableOnce sync.Once
	table     []Entry
)

func supported() error {
	return nil
}

func hostName(n int) (string, bool) {
	if n <= 0 {
		return "", false
	}
	name := unix.SignalName(syscall.Signal(n))
	return name, name != ""
}

func hostNumber(name string) (int, bool) {
	sig := unix.SignalNum(name)
	if sig == 0 {
		return 0, false
	}
	return int(sig), true
}

func hostDescription(n int) string {
	return syscall.Signal(n).String()
}

func hostTable() []Entry {
	tableOnce.Do(func() {
		for n := 1; n <= MaxNumber; n++ {
			name, ok := hostName(n)
			if !ok {
				continue
			}
			table = append(table, Entry{
				Number:      n,
				Name:        name,
				Description: hostDescription(n),
			})
		}
	})
	out := make([]Entry, len(table))
	copy(out, table)
	return out
}
