//go:build tinygo || !cgo

package gradaux

import (
	"errors"

	"github.com/soypat/gradpanel"
)

func ui(img *gradpanel.Image, cfg UIConfig) error {
	return errors.New("require cgo for UI rendering")
}
