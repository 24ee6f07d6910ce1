package web

import "errors"

var ErrPanic = errors.New("recovered panic")
