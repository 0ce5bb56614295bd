package backup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func TestScheduleValidate(t *testing.T) {
	assert.NoError(t, Schedule{Frequency: FrequencyOff}.Validate())
	assert.NoError(t, Schedule{Frequency: FrequencyDaily, Hour: 3}.Validate())
	assert.NoError(t, Schedule{Frequency: FrequencyWeekly, Hour: 23}.Validate())
	assert.Error(t, Schedule{Frequency: "hourly"}.Validate())
	assert.Error(t, Schedule{Frequency: FrequencyDaily, Hour: 24}.Validate())
	assert.Error(t, Schedule{Frequency: FrequencyDaily, Hour: -1}.Validate())
}

func TestScheduleEncodeParseRoundTrip(t *testing.T) {
	raw, err := Schedule{Frequency: FrequencyWeekly, Hour: 4}.Encode()
	assert.NoError(t, err)

	parsed, err := ParseSchedule(raw)
	assert.NoError(t, err)
	assert.Equal(t, FrequencyWeekly, parsed.Frequency)
	assert.Equal(t, 4, parsed.Hour)

	_, err = ParseSchedule("not json")
	assert.Error(t, err)
	_, err = ParseSchedule(`{"frequency":"hourly","hour":2}`)
	assert.Error(t, err)
}

func TestScheduleIsDueDaily(t *testing.T) {
	s := Schedule{Frequency: FrequencyDaily, Hour: 3}

	// never ran, before the hour: anchor is yesterday 03:00, so due
	assert.True(t, s.IsDue(time.Time{}, date(2025, time.June, 10, 2)))

	// ran today at the hour, later the same day: not due
	assert.False(t, s.IsDue(date(2025, time.June, 10, 3), date(2025, time.June, 10, 15)))

	// ran yesterday, now past today's hour: due
	assert.True(t, s.IsDue(date(2025, time.June, 9, 3), date(2025, time.June, 10, 3)))

	// ran yesterday, today's hour not reached: anchor is yesterday's
	// run time, not due
	assert.False(t, s.IsDue(date(2025, time.June, 9, 3), date(2025, time.June, 10, 2)))
}

func TestScheduleIsDueWeekly(t *testing.T) {
	s := Schedule{Frequency: FrequencyWeekly, Hour: 6}

	// never ran: due
	assert.True(t, s.IsDue(time.Time{}, date(2025, time.June, 10, 7)))

	// ran three days ago: not due
	assert.False(t, s.IsDue(date(2025, time.June, 7, 6), date(2025, time.June, 10, 7)))

	// ran seven days ago: due once the hour anchor passes
	assert.True(t, s.IsDue(date(2025, time.June, 3, 6), date(2025, time.June, 10, 6)))
	assert.False(t, s.IsDue(date(2025, time.June, 3, 6), date(2025, time.June, 10, 5)))
}

func TestScheduleIsDueOff(t *testing.T) {
	s := Schedule{Frequency: FrequencyOff}
	assert.False(t, s.IsDue(time.Time{}, date(2025, time.June, 10, 12)))
}

func TestScheduleEnabled(t *testing.T) {
	assert.False(t, Schedule{Frequency: FrequencyOff}.Enabled())
	assert.True(t, Schedule{Frequency: FrequencyDaily}.Enabled())
	assert.True(t, Schedule{Frequency: FrequencyWeekly}.Enabled())
	assert.False(t, Schedule{Frequency: "bogus"}.Enabled())
}

func TestRetryPolicyDelay(t *testing.T) {
	p := DefaultRetryPolicy()
	assert.Equal(t, 30*time.Second, p.Delay(1))
	assert.Equal(t, time.Minute, p.Delay(2))
	assert.Equal(t, 2*time.Minute, p.Delay(3))

	// growth is capped
	assert.Equal(t, 10*time.Minute, p.Delay(8))
}
