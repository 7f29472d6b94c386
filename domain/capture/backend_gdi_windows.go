//go:build windows

package capture

// GDI grabber. The memory DC and top-down DIB section are kept between calls
// and only rebuilt when the requested size changes, so steady-state ticks do
// a single BitBlt plus a BGRA->RGBA copy.

import (
	"fmt"
	"image"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	smXVirtualScreen  = 76
	smYVirtualScreen  = 77
	smCxVirtualScreen = 78
	smCyVirtualScreen = 79
	srcCopy           = 0x00CC0020
	dibRGBColors      = 0
	biRGB             = 0
)

var (
	user32                 = windows.NewLazySystemDLL("user32.dll")
	gdi32                  = windows.NewLazySystemDLL("gdi32.dll")
	procGetDC              = user32.NewProc("GetDC")
	procReleaseDC          = user32.NewProc("ReleaseDC")
	procGetSystemMetrics   = user32.NewProc("GetSystemMetrics")
	procCreateCompatibleDC = gdi32.NewProc("CreateCompatibleDC")
	procDeleteDC           = gdi32.NewProc("DeleteDC")
	procSelectObject       = gdi32.NewProc("SelectObject")
	procBitBlt             = gdi32.NewProc("BitBlt")
	procCreateDIBSection   = gdi32.NewProc("CreateDIBSection")
	procDeleteObject       = gdi32.NewProc("DeleteObject")
)

type bitmapInfoHeader struct {
	BiSize          uint32
	BiWidth         int32
	BiHeight        int32
	BiPlanes        uint16
	BiBitCount      uint16
	BiCompression   uint32
	BiSizeImage     uint32
	BiXPelsPerMeter int32
	BiYPelsPerMeter int32
	BiClrUsed       uint32
	BiClrImportant  uint32
}

type bitmapInfo struct {
	Header bitmapInfoHeader
	_      [4]byte
}

// GDIBackend is the Windows frame grabber. Close releases the cached DIB.
type GDIBackend struct {
	mu     sync.Mutex
	memDC  uintptr
	bitmap uintptr
	prev   uintptr
	bits   unsafe.Pointer
	w, h   int
}

func newGDIBackend() (Backend, error) {
	if err := procBitBlt.Find(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return &GDIBackend{}, nil
}

func (b *GDIBackend) Name() string { return BackendGDI }

// Bounds returns the virtual screen spanning every monitor.
func (b *GDIBackend) Bounds() (image.Rectangle, error) {
	x := int(int32(systemMetric(smXVirtualScreen)))
	y := int(int32(systemMetric(smYVirtualScreen)))
	w := int(int32(systemMetric(smCxVirtualScreen)))
	h := int(int32(systemMetric(smCyVirtualScreen)))
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, fmt.Errorf("%w: virtual screen %dx%d", ErrBackendUnavailable, w, h)
	}
	return image.Rect(x, y, x+w, y+h), nil
}

func (b *GDIBackend) CaptureRect(r image.Rectangle) (*image.RGBA, error) {
	w, h := r.Dx(), r.Dy()
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyRect
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	screenDC, _, _ := procGetDC.Call(0)
	if screenDC == 0 {
		return nil, fmt.Errorf("GetDC failed: %w", windows.GetLastError())
	}
	defer procReleaseDC.Call(0, screenDC)

	if err := b.ensureSurface(screenDC, w, h); err != nil {
		return nil, err
	}
	ok, _, _ := procBitBlt.Call(b.memDC, 0, 0, uintptr(w), uintptr(h), screenDC, uintptr(r.Min.X), uintptr(r.Min.Y), srcCopy)
	if ok == 0 {
		return nil, fmt.Errorf("BitBlt %v failed: %w", r, windows.GetLastError())
	}

	n := w * h * 4
	src := unsafe.Slice((*byte)(b.bits), n)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < n; i += 4 {
		dst.Pix[i+0] = src[i+2]
		dst.Pix[i+1] = src[i+1]
		dst.Pix[i+2] = src[i+0]
		dst.Pix[i+3] = 0xFF
	}
	return dst, nil
}

// ensureSurface (re)creates the memory DC and DIB when the size changes.
func (b *GDIBackend) ensureSurface(screenDC uintptr, w, h int) error {
	if b.memDC != 0 && b.w == w && b.h == h {
		return nil
	}
	b.release()

	memDC, _, _ := procCreateCompatibleDC.Call(screenDC)
	if memDC == 0 {
		return fmt.Errorf("CreateCompatibleDC failed: %w", windows.GetLastError())
	}
	var bi bitmapInfo
	bi.Header.BiSize = uint32(unsafe.Sizeof(bi.Header))
	bi.Header.BiWidth = int32(w)
	bi.Header.BiHeight = -int32(h) // top-down
	bi.Header.BiPlanes = 1
	bi.Header.BiBitCount = 32
	bi.Header.BiCompression = biRGB
	bi.Header.BiSizeImage = uint32(w * h * 4)

	var bits unsafe.Pointer
	bmp, _, _ := procCreateDIBSection.Call(memDC, uintptr(unsafe.Pointer(&bi)), dibRGBColors, uintptr(unsafe.Pointer(&bits)), 0, 0)
	if bmp == 0 {
		procDeleteDC.Call(memDC)
		return fmt.Errorf("CreateDIBSection %dx%d failed: %w", w, h, windows.GetLastError())
	}
	prev, _, _ := procSelectObject.Call(memDC, bmp)
	if prev == 0 || prev == ^uintptr(0) {
		procDeleteObject.Call(bmp)
		procDeleteDC.Call(memDC)
		return fmt.Errorf("SelectObject failed: %w", windows.GetLastError())
	}
	b.memDC, b.bitmap, b.prev, b.bits, b.w, b.h = memDC, bmp, prev, bits, w, h
	return nil
}

func (b *GDIBackend) release() {
	if b.memDC == 0 {
		return
	}
	procSelectObject.Call(b.memDC, b.prev)
	procDeleteObject.Call(b.bitmap)
	procDeleteDC.Call(b.memDC)
	b.memDC, b.bitmap, b.prev, b.bits, b.w, b.h = 0, 0, 0, nil, 0, 0
}

// Close frees the cached GDI objects.
func (b *GDIBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.release()
	return nil
}

func systemMetric(idx int) uintptr {
	v, _, _ := procGetSystemMetrics.Call(uintptr(idx))
	return v
}
