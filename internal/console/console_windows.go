// Package console handles Windows console detection and Ctrl+C
// handling. A double-clicked binary runs without a console window; one
// launched from a terminal gets its std streams wired to it. Ctrl+C is
// registered through the native control handler because libraries that
// lock the OS thread can starve Go's signal delivery.
package console

import (
	"os"
	"strings"
	"sync/atomic"
	"syscall"
	"unsafe"
)

var (
	kernel32                       = syscall.NewLazyDLL("kernel32.dll")
	procGetConsoleWindow           = kernel32.NewProc("GetConsoleWindow")
	procAllocConsole               = kernel32.NewProc("AllocConsole")
	procFreeConsole                = kernel32.NewProc("FreeConsole")
	procGetStdHandle               = kernel32.NewProc("GetStdHandle")
	procCreateToolhelp32Snapshot   = kernel32.NewProc("CreateToolhelp32Snapshot")
	procProcess32First             = kernel32.NewProc("Process32First")
	procProcess32Next              = kernel32.NewProc("Process32Next")
	procOpenProcess                = kernel32.NewProc("OpenProcess")
	procQueryFullProcessImageNameW = kernel32.NewProc("QueryFullProcessImageNameW")
	procSetConsoleCtrlHandler      = kernel32.NewProc("SetConsoleCtrlHandler")
)

const (
	th32csSnapProcess       = 0x00000002
	processQueryLimitedInfo = 0x1000
	maxPath                 = 260
	ctrlCEvent              = 0
	ctrlBreakEvent          = 1
	stdInputHandle          = ^uint32(0) - 10 + 1
	stdOutputHandle         = ^uint32(0) - 11 + 1
	stdErrorHandle          = ^uint32(0) - 12 + 1
)

type processEntry32 struct {
	Size            uint32
	Usage           uint32
	ProcessID       uint32
	DefaultHeapID   uintptr
	ModuleID        uint32
	Threads         uint32
	ParentProcessID uint32
	PriClassBase    int32
	Flags           uint32
	ExeFile         [maxPath]uint16
}

// IsRunningFromConsole reports whether the process should behave as a
// terminal program. Double-clicked launches return false; the
// auto-created console of a console-mode build is freed so no window
// flashes up. GUI-mode builds launched from a terminal get a console
// allocated and their std streams redirected, so call this before the
// logger captures os.Stderr.
func IsRunningFromConsole() bool {
	if hasConsoleWindow() {
		if isLaunchedFromExplorer() {
			freeConsole()
			return false
		}
		return true
	}

	if isLaunchedFromExplorer() {
		return false
	}

	allocConsole()
	return true
}

func hasConsoleWindow() bool {
	hwnd, _, _ := procGetConsoleWindow.Call()
	return hwnd != 0
}

// allocConsole creates a separate console window and points the std
// streams at it. AttachConsole to the parent is deliberately not used:
// sharing the parent's console confuses its input handling.
func allocConsole() {
	procAllocConsole.Call()
	redirectStdStreams()
}

// redirectStdStreams rebinds os.Stdout/Stderr/Stdin, which were
// captured at process start before the console existed.
func redirectStdStreams() {
	nStdout, _, _ := procGetStdHandle.Call(uintptr(stdOutputHandle))
	nStderr, _, _ := procGetStdHandle.Call(uintptr(stdErrorHandle))
	nStdin, _, _ := procGetStdHandle.Call(uintptr(stdInputHandle))

	if nStdout == 0 || nStderr == 0 {
		return
	}

	os.Stdout = os.NewFile(uintptr(nStdout), "/dev/stdout")
	os.Stderr = os.NewFile(uintptr(nStderr), "/dev/stderr")
	if nStdin != 0 {
		os.Stdin = os.NewFile(uintptr(nStdin), "/dev/stdin")
	}
}

func isLaunchedFromExplorer() bool {
	parentPID := getParentProcessID(os.Getpid())
	if parentPID == 0 {
		return false
	}
	name := getProcessImageName(parentPID)
	if name == "" {
		return false
	}
	return isExplorerExe(name)
}

func getParentProcessID(pid int) int {
	handle, _, _ := procCreateToolhelp32Snapshot.Call(uintptr(th32csSnapProcess), 0)
	if handle == uintptr(syscall.InvalidHandle) {
		return 0
	}
	defer syscall.CloseHandle(syscall.Handle(handle))

	var entry processEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))

	ret, _, _ := procProcess32First.Call(handle, uintptr(unsafe.Pointer(&entry)))
	if ret == 0 {
		return 0
	}

	for {
		if int(entry.ProcessID) == pid {
			return int(entry.ParentProcessID)
		}
		ret, _, _ = procProcess32Next.Call(handle, uintptr(unsafe.Pointer(&entry)))
		if ret == 0 {
			break
		}
	}
	return 0
}

func getProcessImageName(pid int) string {
	hProcess, _, _ := procOpenProcess.Call(uintptr(processQueryLimitedInfo), 0, uintptr(pid))
	if hProcess == 0 {
		return ""
	}
	defer syscall.CloseHandle(syscall.Handle(hProcess))

	var nameBuf [maxPath]uint16
	size := uint32(maxPath)
	ret, _, _ := procQueryFullProcessImageNameW.Call(hProcess, 0, uintptr(unsafe.Pointer(&nameBuf[0])), uintptr(unsafe.Pointer(&size)))
	if ret == 0 {
		return ""
	}
	return syscall.UTF16ToString(nameBuf[:size])
}

func isExplorerExe(path string) bool {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '\\' || path[i] == '/' {
			path = path[i+1:]
			break
		}
	}
	return strings.EqualFold(path, "explorer.exe")
}

func freeConsole() {
	procFreeConsole.Call()
}

type consoleHandlerState struct {
	closed       int32
	shutdownChan chan struct{}
	callbackFn   uintptr
}

// Kept global so the Windows callback can reach it.
var globalHandlerState *consoleHandlerState

// SetupConsoleHandler registers a native control handler that closes
// shutdownChan on Ctrl+C or Ctrl+Break. It returns a re-registration
// function: some libraries install their own handler during init and
// must be undone after.
func SetupConsoleHandler(shutdownChan chan struct{}) func() {
	globalHandlerState = &consoleHandlerState{
		shutdownChan: shutdownChan,
	}

	globalHandlerState.callbackFn = syscall.NewCallback(func(ctrlType uint32) uintptr {
		if ctrlType == ctrlCEvent || ctrlType == ctrlBreakEvent {
			if atomic.CompareAndSwapInt32(&globalHandlerState.closed, 0, 1) {
				close(globalHandlerState.shutdownChan)
			}
			return 1
		}
		return 0
	})

	registerHandler := func() {
		if globalHandlerState == nil {
			return
		}
		procSetConsoleCtrlHandler.Call(globalHandlerState.callbackFn, 1)
	}

	registerHandler()
	return registerHandler
}
