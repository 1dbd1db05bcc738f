package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinuteOfDay(t *testing.T) {
	cases := map[string]int{
		"00:00": 0,
		"08:00": 480,
		"10:30": 630,
		"23:59": 1439,
	}
	for clock, want := range cases {
		got, err := MinuteOfDay(clock)
		require.NoError(t, err, clock)
		assert.Equal(t, want, got, clock)
	}

	for _, clock := range []string{"", "25:00", "10:75", "noon"} {
		_, err := MinuteOfDay(clock)
		assert.Error(t, err, clock)
	}
}

func TestClassScheduleValidate(t *testing.T) {
	valid := ClassSchedule{ID: "s1", RoomID: "r1", DayOfWeek: 1, StartTime: "10:00", EndTime: "11:30"}
	require.NoError(t, valid.Validate())

	bad := valid
	bad.DayOfWeek = 7
	assert.Error(t, bad.Validate())

	bad = valid
	bad.EndTime = "10:00"
	assert.Error(t, bad.Validate(), "zero-length interval")

	bad = valid
	bad.EndTime = "09:00"
	assert.Error(t, bad.Validate())

	bad = valid
	bad.StartTime = "bad"
	assert.Error(t, bad.Validate())
}

func TestRoomStatusValid(t *testing.T) {
	assert.True(t, StatusFree.Valid())
	assert.True(t, StatusOccupied.Valid())
	assert.True(t, StatusReserved.Valid())
	assert.False(t, RoomStatus("closed").Valid())
}
