package config

import (
	"errors"
	"io/fs"
	"os"
)

// isNotExist reports whether err indicates a missing config file.
func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || os.IsNotExist(err)
}
