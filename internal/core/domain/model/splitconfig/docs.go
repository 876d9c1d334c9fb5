// Package splitconfig models the versioned revenue split rules used at
// settlement time.
//
// A config belongs to a scope: the global default or a single restaurant.
// Each scope has at most one active config. Activating a new one bumps the
// version and retires the previous active row; history is never edited.
//
// Two methods are supported:
//
//	percent  admin/restaurant/delivery rates summing to exactly 100
//	fixed    a flat delivery fee, the remainder governed by a RemainderPolicy
//
// A fixed config must name its remainder policy. Configs read back from
// storage go through Restore, which does not validate, so settlement checks
// Terms.Validate again before using them.
package splitconfig
