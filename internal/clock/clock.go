package clock

import "time"

// NowFunc returns the current time. Tests replace it to get fixed dates.
var NowFunc = time.Now

func Now() time.Time { return NowFunc() }
