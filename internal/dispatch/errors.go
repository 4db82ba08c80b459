package dispatch

import "errors"

func isUnknown(err error) bool {
	return errors.Is(err, ErrUnknownBackend)
}
