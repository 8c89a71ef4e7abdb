package cloud

import "time"

// Timestamps are TAI seconds counted from the 1993-01-01 epoch, a continuous
// atomic time scale with no leap seconds. The conversion below is therefore a
// plain offset, good for logs and reports; it does not attempt TAI-UTC
// reconciliation.
var taiEpoch = time.Date(1993, time.January, 1, 0, 0, 0, 0, time.UTC)

// TAIToTime converts epoch seconds to a wall clock instant.
func TAIToTime(seconds float64) time.Time {
	return taiEpoch.Add(time.Duration(seconds * float64(time.Second)))
}

// TimeToTAI converts a wall clock instant to epoch seconds.
func TimeToTAI(t time.Time) float64 {
	return t.Sub(taiEpoch).Seconds()
}
