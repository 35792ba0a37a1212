package language

import "errors"

// ErrUnknownLanguage indicates an identifier outside the supported set.
var ErrUnknownLanguage = errors.New("unknown language")
