package snooze

import "time"

// NowFunc returns the current time; tests swap it out for a fake clock.
var NowFunc func() time.Time = time.Now
