//go:build windows

package discovery

import (
	"net"
	"unsafe"

	"golang.org/x/sys/windows"
)

// enableBroadcast sets SO_BROADCAST on conn. Windows rejects a
// broadcast send on a socket that hasn't opted in, the same as Linux.
func enableBroadcast(conn *net.UDPConn) error {
	raw, err := conn.SyscallConn()
	if err != nil {
		return err
	}

	var sockErr error
	if err := raw.Control(func(fd uintptr) {
		one := int32(1)
		sockErr = windows.Setsockopt(
			windows.Handle(fd),
			windows.SOL_SOCKET,
			windows.SO_BROADCAST,
			(*byte)(unsafe.Pointer(&one)),
			int32(unsafe.Sizeof(one)),
		)
	}); err != nil {
		return err
	}
	return sockErr
}
