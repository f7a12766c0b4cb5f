package settings

import "time"

const (
	ScheduleEvery5Minutes  = "every_5_minutes"
	ScheduleEvery15Minutes = "every_15_minutes"
	ScheduleEvery30Minutes = "every_30_minutes"
	ScheduleHourly         = "hourly"
	ScheduleTwiceDaily     = "twicedaily"
	ScheduleDaily          = "daily"
	ScheduleWeekly         = "weekly"
	ScheduleCustom         = "custom"
)

const (
	MinCustomIntervalMinutes = 1
	MaxCustomIntervalMinutes = 43200
)

// ScheduleOption is one selectable recurrence. Interval is zero for the
// custom schedule, whose length comes from the settings.
type ScheduleOption struct {
	Key      string        `json:"key"`
	Label    string        `json:"label"`
	Interval time.Duration `json:"-"`
}

var scheduleOptions = []ScheduleOption{
	{Key: ScheduleEvery5Minutes, Label: "Every 5 Minutes", Interval: 5 * time.Minute},
	{Key: ScheduleEvery15Minutes, Label: "Every 15 Minutes", Interval: 15 * time.Minute},
	{Key: ScheduleEvery30Minutes, Label: "Every 30 Minutes", Interval: 30 * time.Minute},
	{Key: ScheduleHourly, Label: "Hourly", Interval: time.Hour},
	{Key: ScheduleTwiceDaily, Label: "Twice Daily", Interval: 12 * time.Hour},
	{Key: ScheduleDaily, Label: "Daily", Interval: 24 * time.Hour},
	{Key: ScheduleWeekly, Label: "Weekly", Interval: 7 * 24 * time.Hour},
	{Key: ScheduleCustom, Label: "Custom Interval"},
}

// ScheduleOptions lists the recurrences in display order.
func ScheduleOptions() []ScheduleOption {
	out := make([]ScheduleOption, len(scheduleOptions))
	copy(out, scheduleOptions)
	return out
}

func LookupSchedule(key string) (ScheduleOption, bool) {
	for _, opt := range scheduleOptions {
		if opt.Key == key {
			return opt, true
		}
	}
	return ScheduleOption{}, false
}

// ScheduleLabel returns the display label, or the key itself when unknown.
func ScheduleLabel(key string) string {
	if opt, ok := LookupSchedule(key); ok {
		return opt.Label
	}
	return key
}

// ClampCustomInterval bounds a custom interval to [1, 43200] minutes.
func ClampCustomInterval(minutes int) int {
	return max(MinCustomIntervalMinutes, min(MaxCustomIntervalMinutes, minutes))
}

// ScheduleInterval resolves the period between runs for a recurrence.
func ScheduleInterval(key string, customMinutes int) (time.Duration, bool) {
	opt, ok := LookupSchedule(key)
	if !ok {
		return 0, false
	}
	if opt.Key == ScheduleCustom {
		return time.Duration(ClampCustomInterval(customMinutes)) * time.Minute, true
	}
	return opt.Interval, true
}
