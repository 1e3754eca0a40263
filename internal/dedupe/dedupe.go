// Package dedupe provides shared singleflight groups used to deduplicate
// concurrent unlocked profile reads. Only one storage read runs for a given
// player id while other callers wait for the result.
package dedupe

import "golang.org/x/sync/singleflight"

// ProfileGroup deduplicates profile reads keyed by the normalized player id.
// Callers must clone the shared result before mutating it.
var ProfileGroup singleflight.Group
