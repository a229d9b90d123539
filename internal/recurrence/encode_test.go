package recurrence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_Once(t *testing.T) {
	tp, err := Encode(KindOnce, nil, &Window{Start: 1756500000, End: 1756503600})
	require.NoError(t, err)

	assert.Equal(t, PeriodOnce, tp.Type)
	assert.Equal(t, int64(1756500000), tp.StartDate)
	assert.Equal(t, 3600, tp.Period)
}

func TestEncode_Once_MissingWindow(t *testing.T) {
	_, err := Encode(KindOnce, nil, nil)
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}

func TestEncode_Daily_DefaultsEvery(t *testing.T) {
	tp, err := Encode(KindDaily, &Config{
		StartTime: intPtr(7200),
		Duration:  intPtr(7200),
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, PeriodDaily, tp.Type)
	assert.Equal(t, 7200, tp.StartTime)
	assert.Equal(t, 7200, tp.Period)
	assert.Equal(t, 1, tp.Every)
}

// Worked example: weekly Thursday+Friday 5-7 AM.
func TestEncode_Weekly(t *testing.T) {
	tp, err := Encode(KindWeekly, &Config{
		StartTime: intPtr(18000),
		Duration:  intPtr(7200),
		DayOfWeek: intPtr(24),
		Every:     intPtr(1),
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, &TimePeriod{
		Type:      PeriodWeekly,
		StartTime: 18000,
		Period:    7200,
		DayOfWeek: 24,
		Every:     1,
	}, tp)
}

func TestEncode_Weekly_MissingDayOfWeek(t *testing.T) {
	_, err := Encode(KindWeekly, &Config{
		StartTime: intPtr(0),
		Duration:  intPtr(3600),
	}, nil)
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}

func TestEncode_MonthlyByDay_Defaults(t *testing.T) {
	tp, err := Encode(KindMonthly, &Config{
		StartTime: intPtr(7200),
		Duration:  intPtr(7200),
		Day:       intPtr(5),
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, PeriodMonthly, tp.Type)
	assert.Equal(t, 5, tp.Day)
	assert.Equal(t, 0, tp.DayOfWeek)
	assert.Equal(t, 1, tp.Every)
	assert.Equal(t, AllMonths, tp.Month)
}

// Worked example: last Friday of January, April, July, October, 1-3 AM.
func TestEncode_MonthlyByWeekday(t *testing.T) {
	tp, err := Encode(KindMonthly, &Config{
		StartTime: intPtr(3600),
		Duration:  intPtr(7200),
		DayOfWeek: intPtr(16),
		Every:     intPtr(5),
		Month:     intPtr(585),
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, &TimePeriod{
		Type:      PeriodMonthly,
		StartTime: 3600,
		Period:    7200,
		DayOfWeek: 16,
		Every:     5,
		Month:     585,
	}, tp)
}

func TestEncode_Monthly_SelectorExclusivity(t *testing.T) {
	base := Config{StartTime: intPtr(0), Duration: intPtr(3600)}

	both := base
	both.Day = intPtr(5)
	both.DayOfWeek = intPtr(1)
	_, err := Encode(KindMonthly, &both, nil)
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)

	neither := base
	_, err = Encode(KindMonthly, &neither, nil)
	require.ErrorAs(t, err, &cfgErr)
}

func TestEncode_MissingTiming(t *testing.T) {
	for _, kind := range []Kind{KindDaily, KindWeekly, KindMonthly} {
		_, err := Encode(kind, &Config{Duration: intPtr(3600)}, nil)
		var cfgErr *ConfigurationError
		assert.ErrorAs(t, err, &cfgErr, "kind %s without start_time", kind)

		_, err = Encode(kind, nil, nil)
		assert.ErrorAs(t, err, &cfgErr, "kind %s without config", kind)
	}
}

func TestEncode_TimingOutOfRange(t *testing.T) {
	var cfgErr *ConfigurationError

	// Start offset past end of day, duration negative.
	_, err := Encode(KindDaily, &Config{
		StartTime: intPtr(90000),
		Duration:  intPtr(-100),
	}, nil)
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Message, "86399")

	_, err = Encode(KindWeekly, &Config{
		StartTime: intPtr(-1),
		Duration:  intPtr(3600),
		DayOfWeek: intPtr(1),
	}, nil)
	require.ErrorAs(t, err, &cfgErr)

	_, err = Encode(KindMonthly, &Config{
		StartTime: intPtr(3600),
		Duration:  intPtr(0),
		Day:       intPtr(5),
	}, nil)
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Message, "positive")

	// Boundary values pass: midnight start, and a start in the last
	// second of the day.
	_, err = Encode(KindDaily, &Config{StartTime: intPtr(0), Duration: intPtr(60)}, nil)
	assert.NoError(t, err)
	_, err = Encode(KindDaily, &Config{StartTime: intPtr(86399), Duration: intPtr(60)}, nil)
	assert.NoError(t, err)
}

func TestEncode_UnknownKind(t *testing.T) {
	_, err := Encode(Kind("hourly"), &Config{}, nil)
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Message, "hourly")
}
