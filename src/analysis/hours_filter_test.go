package analysis

import (
	"testing"
	"time"

	"sales-forecast/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func atHour(product string, hour int) models.MTransaction {
	return models.MTransaction{
		ProductID: product,
		Timestamp: time.Date(2024, 1, 1, hour, 15, 0, 0, time.UTC),
		Amount:    1,
		Quantity:  1,
	}
}

func TestHoursWindowContains(t *testing.T) {
	night := HoursWindow{StartHour: 18, EndHour: 2}
	day := HoursWindow{StartHour: 9, EndHour: 17}

	assert.True(t, night.Wraps())
	assert.False(t, day.Wraps())

	tests := []struct {
		window HoursWindow
		hour   int
		want   bool
	}{
		{night, 0, true},
		{night, 2, true},
		{night, 18, true},
		{night, 23, true},
		{night, 3, false},
		{night, 17, false},
		{day, 9, true},
		{day, 10, true},
		{day, 17, true},
		{day, 18, false},
		{day, 8, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.window.Contains(tt.hour), "window %v hour %d", tt.window, tt.hour)
	}
}

func TestHoursWindowHours(t *testing.T) {
	assert.Equal(t, []int{18, 19, 20, 21, 22, 23, 0, 1, 2}, HoursWindow{StartHour: 18, EndHour: 2}.Hours())
	assert.Equal(t, []int{9, 10, 11}, HoursWindow{StartHour: 9, EndHour: 11}.Hours())
	assert.Len(t, HoursWindow{StartHour: 5, EndHour: 5}.Hours(), 1)
}

func TestHoursWindowValidate(t *testing.T) {
	_, err := NewHoursWindow(models.MBusinessHoursConfig{StartHour: 18, EndHour: 24})
	assert.Error(t, err)
	_, err = NewHoursWindow(models.MBusinessHoursConfig{StartHour: -1, EndHour: 2})
	assert.Error(t, err)

	w, err := NewHoursWindow(models.MBusinessHoursConfig{StartHour: 18, EndHour: 2})
	require.NoError(t, err)
	assert.Equal(t, HoursWindow{StartHour: 18, EndHour: 2}, w)
}

func TestFilterBusinessHoursKeepsOrder(t *testing.T) {
	records := []models.MTransaction{
		atHour("a", 23), atHour("b", 3), atHour("c", 0), atHour("d", 17), atHour("e", 18),
	}

	filtered, err := FilterBusinessHours(records, HoursWindow{StartHour: 18, EndHour: 2})
	require.NoError(t, err)

	ids := make([]string, len(filtered))
	for i, r := range filtered {
		ids[i] = r.ProductID
	}
	assert.Equal(t, []string{"a", "c", "e"}, ids)
}

func TestFilterBusinessHoursRejectsUnsetTimestamp(t *testing.T) {
	_, err := FilterBusinessHours([]models.MTransaction{{ProductID: "a"}}, HoursWindow{StartHour: 18, EndHour: 2})
	assert.ErrorIs(t, err, errUnsetTimestamp)
}

func TestFilterBusinessHoursEmpty(t *testing.T) {
	filtered, err := FilterBusinessHours(nil, HoursWindow{StartHour: 18, EndHour: 2})
	require.NoError(t, err)
	assert.Empty(t, filtered)
}
