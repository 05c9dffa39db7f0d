package scoring

import "errors"

var ErrUnknownTiebreakKey = errors.New("unrecognized tie-break key")
