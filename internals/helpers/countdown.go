package helper

import "time"

// Countdown is the remaining time until a deadline at one-second granularity.
type Countdown struct {
	Days    int  `json:"days"`
	Hours   int  `json:"hours"`
	Minutes int  `json:"minutes"`
	Seconds int  `json:"seconds"`
	Expired bool `json:"expired"`
}

func Remaining(deadline, now time.Time) Countdown {
	d := deadline.Sub(now).Truncate(time.Second)
	if d <= 0 {
		return Countdown{Expired: true}
	}
	total := int64(d / time.Second)
	return Countdown{
		Days:    int(total / 86400),
		Hours:   int(total % 86400 / 3600),
		Minutes: int(total % 3600 / 60),
		Seconds: int(total % 60),
	}
}
