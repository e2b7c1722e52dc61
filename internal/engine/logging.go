package engine

import "github.com/treykane/infiniscroll/internal/logging"

// engineLog records boundary stops, rebuilds and centering give-ups at debug
// level. None of these are failures.
var engineLog = logging.New("engine")
