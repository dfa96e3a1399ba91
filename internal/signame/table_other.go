//go:build !(aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris)

package signame

import "runtime"

func supported() error {
	return &UnsupportedPlatformError{Platform: runtime.GOOS}
}

func hostName(int) (string, bool) {
	return "", false
}

func hostNumber(string) (int, bool) {
	return 0, false
}

func hostDescription(int) string {
	return ""
}

func hostTable() []Entry {
	return nil
}
