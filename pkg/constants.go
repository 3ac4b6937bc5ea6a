package dupcmp

// Output formats
const (
	FormatHuman  = "human"  // "<count> <index> <path>" per member
	FormatFdupes = "fdupes" // one path per line, blank line between groups
	FormatJSON   = "json"
)

// Debug flags understood by SetDebugFlags
const (
	DebugWalk    = "walk"
	DebugCollect = "collect"
	DebugCompare = "compare"
	DebugGroup   = "group"
)

// iovMaxFallback bounds a single writev call (Linux IOV_MAX)
const iovMaxFallback = 1024
