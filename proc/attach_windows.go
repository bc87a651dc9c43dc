//go:build windows

package proc

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                       = windows.NewLazySystemDLL("user32.dll")
	procFindWindowW              = user32.NewProc("FindWindowW")
	procGetWindowThreadProcessID = user32.NewProc("GetWindowThreadProcessId")
)

func findByWindowTitle(titles []string) (int32, bool) {
	for _, title := range titles {
		ptr, err := windows.UTF16PtrFromString(title)
		if err != nil {
			continue
		}

		hwnd, _, _ := procFindWindowW.Call(0, uintptr(unsafe.Pointer(ptr)))
		if hwnd == 0 {
			continue
		}

		var pid uint32
		_, _, _ = procGetWindowThreadProcessID.Call(
			hwnd, uintptr(unsafe.Pointer(&pid)))
		if pid != 0 {
			return int32(pid), true
		}
	}

	return 0, false
}

// openTarget opens pid with read/write memory rights and resolves the base
// address of its primary module (the game executable).
func openTarget(pid int32) (Memory, uint64, error) {
	const rights = windows.PROCESS_VM_READ |
		windows.PROCESS_VM_WRITE |
		windows.PROCESS_VM_OPERATION |
		windows.PROCESS_QUERY_INFORMATION

	h, err := windows.OpenProcess(rights, false, uint32(pid))
	if err != nil {
		return nil, 0, fmt.Errorf("%w: open pid %d: %v", ErrAttachFailed, pid, err)
	}

	base, err := primaryModuleBase(pid)
	if err != nil {
		_ = windows.CloseHandle(h)
		return nil, 0, err
	}

	return &winMemory{handle: h}, base, nil
}

// primaryModuleBase walks the module snapshot of pid. The first entry is
// always the executable image itself.
func primaryModuleBase(pid int32) (uint64, error) {
	snap, err := windows.CreateToolhelp32Snapshot(
		windows.TH32CS_SNAPMODULE|windows.TH32CS_SNAPMODULE32, uint32(pid))
	if err != nil {
		return 0, fmt.Errorf("%w: module snapshot: %v", ErrAttachFailed, err)
	}
	defer windows.CloseHandle(snap)

	var entry windows.ModuleEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))

	if err := windows.Module32First(snap, &entry); err != nil {
		return 0, fmt.Errorf("%w: enumerate modules: %v", ErrAttachFailed, err)
	}

	return uint64(entry.ModBaseAddr), nil
}

type winMemory struct {
	handle windows.Handle
}

func (m *winMemory) ReadMemory(buf []byte, addr uint64) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}

	var done uintptr
	err := windows.ReadProcessMemory(
		m.handle, uintptr(addr), &buf[0], uintptr(len(buf)), &done)

	return int(done), err
}

func (m *winMemory) WriteMemory(addr uint64, data []byte) (int, error) {
	if len(data) == 0 {
		return 0, nil
	}

	var done uintptr
	err := windows.WriteProcessMemory(
		m.handle, uintptr(addr), &data[0], uintptr(len(data)), &done)

	return int(done), err
}

func (m *winMemory) Close() error {
	return windows.CloseHandle(m.handle)
}
