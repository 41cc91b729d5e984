//go:build !linux

package signals

import (
	"errors"
	"fmt"
)

func Send(pid, sig int) error {
	return fmt.Errorf("signals: send on this platform: %w", errors.ErrUnsupported)
}
