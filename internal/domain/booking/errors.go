package booking

import "errors"

var ErrNoServiceSelected = errors.New("no service selected")
