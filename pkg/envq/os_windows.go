//go:build windows

package envq

import (
	"errors"
	"runtime"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

// systemQuerier issues the real Windows sized queries.
type systemQuerier struct{}

var (
	modkernel32          = windows.NewLazySystemDLL("kernel32.dll")
	procGetDllDirectoryW = modkernel32.NewProc("GetDllDirectoryW")
	procSetDllDirectoryW = modkernel32.NewProc("SetDllDirectoryW")
	procSetLastError     = modkernel32.NewProc("SetLastError")
)

func (systemQuerier) ExpandStrings(template string, buf []uint16) (uint32, uint32) {
	src, err := windows.UTF16PtrFromString(template)
	if err != nil {
		return 0, uint32(windows.ERROR_INVALID_PARAMETER)
	}
	n, err := windows.ExpandEnvironmentStrings(src, bufPtr(buf), uint32(len(buf)))
	if n == 0 {
		return 0, callCode(err)
	}
	return n, codeSuccess
}

func (systemQuerier) EnvironmentVariable(name string, buf []uint16) (uint32, uint32) {
	src, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return 0, uint32(windows.ERROR_INVALID_PARAMETER)
	}
	n, err := windows.GetEnvironmentVariable(src, bufPtr(buf), uint32(len(buf)))
	if n == 0 {
		return 0, callCode(err)
	}
	return n, codeSuccess
}

func (systemQuerier) CurrentDirectory(buf []uint16) (uint32, uint32) {
	n, err := windows.GetCurrentDirectory(uint32(len(buf)), bufPtr(buf))
	if n == 0 {
		return 0, callCode(err)
	}
	return n, codeSuccess
}

// SearchPathDirectory wraps GetDllDirectoryW, which reports a zero size both
// for an empty search path and on failure, and only sets an error code in
// the failure case. The last-error register is thread local, so the
// pre-clear and the query must stay on one OS thread.
func (systemQuerier) SearchPathDirectory(buf []uint16) (uint32, uint32) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	procSetLastError.Call(uintptr(codeSuccess)) //nolint:errcheck // SetLastError cannot fail
	r1, _, lastErr := procGetDllDirectoryW.Call(
		uintptr(uint32(len(buf))),
		uintptr(unsafe.Pointer(bufPtr(buf))),
	)
	if n := uint32(r1); n != 0 {
		return n, codeSuccess
	}
	return 0, callCode(lastErr)
}

func setSearchPath(dir string) error {
	p, err := windows.UTF16PtrFromString(dir)
	if err != nil {
		return err
	}
	r1, _, lastErr := procSetDllDirectoryW.Call(uintptr(unsafe.Pointer(p)))
	if r1 == 0 {
		return lastErr
	}
	return nil
}

func bufPtr(buf []uint16) *uint16 {
	if len(buf) == 0 {
		return nil
	}
	return &buf[0]
}

// callCode extracts the native code from a syscall error. Proc.Call always
// hands back a syscall.Errno, zero included, so a zero errno maps to
// codeSuccess rather than an invented failure.
func callCode(err error) uint32 {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return uint32(errno)
	}
	if err == nil {
		return codeSuccess
	}
	return uint32(windows.ERROR_GEN_FAILURE)
}
