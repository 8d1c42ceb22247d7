package draft

import "time"

// Policy converts a due choice into an epoch-millisecond timestamp at
// submission time. ok=false means no due date should be sent at all.
type Policy func(choice Due, now time.Time) (int64, bool)

// DueAt is the default policy: a coarse UTC-offset approximation rather
// than calendar-exact day boundaries. Swap the Policy for timezone-aware
// computation if exact due dates are needed.
func DueAt(choice Due, now time.Time) (int64, bool) {
	const day = 24 * time.Hour
	switch choice {
	case DueToday:
		return now.Add(8 * time.Hour).UnixMilli(), true
	case DueTomorrow:
		return now.Add(day + 8*time.Hour).UnixMilli(), true
	case DueThisWeek:
		return now.Add(3 * day).UnixMilli(), true
	}
	return 0, false
}
