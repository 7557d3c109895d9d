//go:build windows

package platform

import (
	"fmt"
	"runtime"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
)

// ListScreens enumerates attached displays through WMI's Win32_DesktopMonitor
// class, the same CoInitialize/CreateObject/oleutil.CallMethod dance any
// COM automation client uses against the WMI provider.
func ListScreens() ([]Screen, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		return nil, fmt.Errorf("platform: failed to initialize COM: %w", err)
	}
	defer ole.CoUninitialize()

	unknown, err := oleutil.CreateObject("WbemScripting.SWbemLocator")
	if err != nil {
		return nil, fmt.Errorf("platform: failed to create WMI locator: %w", err)
	}
	defer unknown.Release()

	locator, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return nil, fmt.Errorf("platform: failed to query WMI locator: %w", err)
	}
	defer locator.Release()

	serviceVar, err := oleutil.CallMethod(locator, "ConnectServer")
	if err != nil {
		return nil, fmt.Errorf("platform: failed to connect to WMI: %w", err)
	}
	service := serviceVar.ToIDispatch()
	defer service.Release()

	resultVar, err := oleutil.CallMethod(service, "ExecQuery", "SELECT Caption, DeviceID, ScreenWidth, ScreenHeight FROM Win32_DesktopMonitor")
	if err != nil {
		return nil, fmt.Errorf("platform: WMI query failed: %w", err)
	}
	result := resultVar.ToIDispatch()
	defer result.Release()

	countVar, err := oleutil.GetProperty(result, "Count")
	if err != nil {
		return nil, fmt.Errorf("platform: failed to read result count: %w", err)
	}
	count := int(countVar.Val)

	screens := make([]Screen, 0, count)
	for i := 0; i < count; i++ {
		itemVar, err := oleutil.CallMethod(result, "ItemIndex", i)
		if err != nil {
			continue
		}
		item := itemVar.ToIDispatch()

		name := stringProp(item, "Caption")
		width := uint32Prop(item, "ScreenWidth")
		height := uint32Prop(item, "ScreenHeight")
		item.Release()

		if width == 0 || height == 0 {
			continue
		}
		screens = append(screens, Screen{Name: name, Width: width, Height: height, IsPrimary: i == 0})
	}

	if len(screens) == 0 {
		return []Screen{{Name: "primary", IsPrimary: true}}, nil
	}
	return screens, nil
}

func stringProp(item *ole.IDispatch, name string) string {
	v, err := oleutil.GetProperty(item, name)
	if err != nil {
		return ""
	}
	return v.ToString()
}

func uint32Prop(item *ole.IDispatch, name string) uint32 {
	v, err := oleutil.GetProperty(item, name)
	if err != nil || v.Val == 0 {
		return 0
	}
	return uint32(v.Val)
}
