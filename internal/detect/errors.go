package detect

import (
	"errors"

	"github.com/planscan/boundary/internal/raster"
)

// ErrInvalidImage indicates unreadable or corrupt input bytes.
// It aliases the raster sentinel so callers can match either package.
var ErrInvalidImage = raster.ErrInvalidImage

// ErrTimeout indicates the wall-clock budget for a page was exceeded. It is
// fatal for that page only; batch callers skip the page and continue.
var ErrTimeout = errors.New("detection timed out")

// IsTimeout reports whether err is (or wraps) ErrTimeout.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}
