package binstall

import (
	"os"
	"runtime"
)

// IsCIEnv returns true if the current environment is a known ci system.
func IsCIEnv() bool {
	return os.Getenv("CI") != ""
}

// IsWindows returns true if the current environment is Windows.
func IsWindows() bool {
	return runtime.GOOS == "windows"
}
