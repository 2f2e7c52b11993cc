package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{in: "09:00", want: NewTimeOfDay(9, 0)},
		{in: "17:45:00", want: NewTimeOfDay(17, 45)},
		{in: " 7:05 ", want: NewTimeOfDay(7, 5)},
		{in: "00:00", want: 0},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "12:30:15", wantErr: true},
		{in: "1230", wantErr: true},
		{in: "ab:cd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeOfDayString(t *testing.T) {
	tod := NewTimeOfDay(9, 5)
	assert.Equal(t, "09:05", tod.String())
	assert.Equal(t, "09:20", tod.Add(15).String())
	assert.Equal(t, 9, tod.Hour())
	assert.Equal(t, 5, tod.Minute())
}

func TestTimeOfDayJSON(t *testing.T) {
	var v struct {
		At TimeOfDay `json:"at"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"at":"13:30"}`), &v))
	assert.Equal(t, NewTimeOfDay(13, 30), v.At)

	assert.Error(t, json.Unmarshal([]byte(`{"at":810}`), &v))
}

func TestTimeOfDayScan(t *testing.T) {
	var tod TimeOfDay
	require.NoError(t, tod.Scan(int64(540)))
	assert.Equal(t, NewTimeOfDay(9, 0), tod)

	require.NoError(t, tod.Scan([]byte("600")))
	assert.Equal(t, NewTimeOfDay(10, 0), tod)

	assert.Error(t, tod.Scan(3.5))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-11-02T00:00:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("02/11/2026")
	assert.Error(t, err)

	local := time.Date(2026, 11, 2, 23, 30, 0, 0, time.FixedZone("X", 3600))
	assert.Equal(t, time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC), DateOf(local))
}
