//go:build !linux && !darwin

package hwinfo

import "fmt"

// Detect fails on platforms without a memory detection path. Downstream
// tuning depends on real numbers, so there is no default to fall back to.
func Detect() (HostResources, error) {
	return HostResources{}, fmt.Errorf("host resource detection is not supported on this platform")
}
