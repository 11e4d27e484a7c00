package pair

// Canonical orders two user ids as (low, high).
//
// Match rows are keyed by this ordering so a pair of users can never
// produce two rows regardless of which side's action created the match.
// Every code path that touches a match (reconciliation, disclosure,
// moderation, admin) must go through this function — inconsistent
// ordering breaks lookups silently.
func Canonical(a, b uint64) (low, high uint64) {
	if a < b {
		return a, b
	}
	return b, a
}
