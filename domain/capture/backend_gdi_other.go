//go:build !windows

package capture

import "fmt"

func newGDIBackend() (Backend, error) {
	return nil, fmt.Errorf("%w: %s requires windows", ErrBackendUnavailable, BackendGDI)
}
