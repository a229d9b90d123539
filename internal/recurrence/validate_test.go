package recurrence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_UnsupportedKind(t *testing.T) {
	_, verr := Validate(Request{Kind: "hourly"})
	require.NotNil(t, verr)
	assert.Equal(t, ReasonUnsupportedKind, verr.Code)
}

func TestValidate_MissingConfig(t *testing.T) {
	for _, kind := range []Kind{KindDaily, KindWeekly, KindMonthly} {
		_, verr := Validate(Request{Kind: kind})
		require.NotNil(t, verr, "kind %s", kind)
		assert.Equal(t, ReasonMissingConfig, verr.Code)
	}
}

func TestValidate_Weekly_DayMaskRange(t *testing.T) {
	mk := func(mask int) Request {
		return Request{Kind: KindWeekly, Config: &Config{
			StartTime: intPtr(0),
			Duration:  intPtr(3600),
			DayOfWeek: intPtr(mask),
		}}
	}

	for _, mask := range []int{0, 128, -1} {
		_, verr := Validate(mk(mask))
		require.NotNil(t, verr, "mask %d", mask)
		assert.Equal(t, ReasonInvalidDayOfWeekMask, verr.Code)
	}
	for _, mask := range []int{1, 127} {
		norm, verr := Validate(mk(mask))
		require.Nil(t, verr, "mask %d", mask)
		assert.Equal(t, mask, *norm.Config.DayOfWeek)
	}
}

func TestValidate_Weekly_MissingDayMask(t *testing.T) {
	_, verr := Validate(Request{Kind: KindWeekly, Config: &Config{
		StartTime: intPtr(0),
		Duration:  intPtr(3600),
	}})
	require.NotNil(t, verr)
	assert.Equal(t, ReasonInvalidDayOfWeekMask, verr.Code)
}

func TestValidate_Monthly_SelectorExclusivity(t *testing.T) {
	both := Request{Kind: KindMonthly, Config: &Config{
		StartTime: intPtr(0), Duration: intPtr(3600),
		Day: intPtr(5), DayOfWeek: intPtr(1),
	}}
	_, verr := Validate(both)
	require.NotNil(t, verr)
	assert.Equal(t, ReasonAmbiguousMonthlySelector, verr.Code)

	neither := Request{Kind: KindMonthly, Config: &Config{
		StartTime: intPtr(0), Duration: intPtr(3600),
	}}
	_, verr = Validate(neither)
	require.NotNil(t, verr)
	assert.Equal(t, ReasonAmbiguousMonthlySelector, verr.Code)
}

func TestValidate_Monthly_DayOfMonthRange(t *testing.T) {
	mk := func(day int) Request {
		return Request{Kind: KindMonthly, Config: &Config{
			StartTime: intPtr(0), Duration: intPtr(3600), Day: intPtr(day),
		}}
	}

	for _, day := range []int{0, 32} {
		_, verr := Validate(mk(day))
		require.NotNil(t, verr, "day %d", day)
		assert.Equal(t, ReasonInvalidDayOfMonth, verr.Code)
	}
	_, verr := Validate(mk(31))
	assert.Nil(t, verr)
}

func TestValidate_Monthly_OccurrenceSelector(t *testing.T) {
	mk := func(every *int) Request {
		return Request{Kind: KindMonthly, Config: &Config{
			StartTime: intPtr(0), Duration: intPtr(3600),
			DayOfWeek: intPtr(1), Every: every,
		}}
	}

	for _, every := range []int{0, 32} {
		_, verr := Validate(mk(intPtr(every)))
		require.NotNil(t, verr, "every %d", every)
		assert.Equal(t, ReasonInvalidOccurrenceSelector, verr.Code)
	}

	// Absent selector defaults to the first occurrence. This is the only
	// default the validator applies.
	norm, verr := Validate(mk(nil))
	require.Nil(t, verr)
	require.NotNil(t, norm.Config.Every)
	assert.Equal(t, 1, *norm.Config.Every)

	// Composite sums up to the observed upper bound pass through.
	norm, verr = Validate(mk(intPtr(15)))
	require.Nil(t, verr)
	assert.Equal(t, 15, *norm.Config.Every)
}

func TestValidate_Monthly_MonthMaskRange(t *testing.T) {
	mk := func(month int) Request {
		return Request{Kind: KindMonthly, Config: &Config{
			StartTime: intPtr(0), Duration: intPtr(3600),
			Day: intPtr(1), Month: intPtr(month),
		}}
	}

	for _, month := range []int{0, 4096} {
		_, verr := Validate(mk(month))
		require.NotNil(t, verr, "month %d", month)
		assert.Equal(t, ReasonInvalidMonthMask, verr.Code)
	}
	_, verr := Validate(mk(AllMonths))
	assert.Nil(t, verr)
}

func TestValidate_Monthly_MissingTiming(t *testing.T) {
	_, verr := Validate(Request{Kind: KindMonthly, Config: &Config{
		Day: intPtr(5), Duration: intPtr(3600),
	}})
	require.NotNil(t, verr)
	assert.Equal(t, ReasonMissingTimingField, verr.Code)

	_, verr = Validate(Request{Kind: KindMonthly, Config: &Config{
		Day: intPtr(5), StartTime: intPtr(0),
	}})
	require.NotNil(t, verr)
	assert.Equal(t, ReasonMissingTimingField, verr.Code)
}

func TestValidate_Once_TimeWindow(t *testing.T) {
	_, verr := Validate(Request{Kind: KindOnce, WindowStart: 100, WindowEnd: 100})
	require.NotNil(t, verr)
	assert.Equal(t, ReasonInvalidTimeWindow, verr.Code)

	_, verr = Validate(Request{Kind: KindOnce, WindowStart: 100, WindowEnd: 50})
	require.NotNil(t, verr)
	assert.Equal(t, ReasonInvalidTimeWindow, verr.Code)

	norm, verr := Validate(Request{Kind: KindOnce, WindowStart: 100, WindowEnd: 101})
	require.Nil(t, verr)
	assert.Equal(t, KindOnce, norm.Kind)
}

// Daily timing presence is the codec's concern, not the validator's.
func TestValidate_Daily_NoTimingCheck(t *testing.T) {
	norm, verr := Validate(Request{Kind: KindDaily, Config: &Config{}})
	require.Nil(t, verr)
	assert.Equal(t, KindDaily, norm.Kind)
}
