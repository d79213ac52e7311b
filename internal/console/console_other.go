//go:build !windows

// Package console handles console detection and Ctrl+C handling. On
// non-Windows platforms these are stubs: there is always a terminal and
// Go's own signal handling is reliable.
package console

// IsRunningFromConsole always reports true off Windows.
func IsRunningFromConsole() bool {
	return true
}

// SetupConsoleHandler is a no-op off Windows; os.Interrupt delivery
// works without help there.
func SetupConsoleHandler(shutdownChan chan struct{}) func() {
	return func() {}
}
