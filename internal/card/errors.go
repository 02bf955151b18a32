package card

import "errors"

// ErrInvalidCard is returned for malformed card strings or duplicate cards,
// matching the InvalidCard entry of the engine's error taxonomy (spec.md §7).
var ErrInvalidCard = errors.New("invalid card")
