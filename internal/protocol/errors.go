package protocol

import "errors"

var ErrUnknownColorOrder = errors.New("protocol: unknown color order")
