package hours

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseClock12(t *testing.T) {
	tests := []struct {
		input   string
		want    int32
		wantErr bool
	}{
		{input: "12:00 am", want: 0},
		{input: "12 am", want: 0},
		{input: "12:00 pm", want: 43200},
		{input: "1:00 am", want: 3600},
		{input: "9 am", want: 32400},
		{input: "11:30 am", want: 41400},
		{input: "5 pm", want: 61200},
		{input: "11:30 pm", want: 84600},
		{input: "3:30 AM", want: 12600},
		{input: "  9:15 pm  ", want: 76500},
		{input: "13:00 pm", wantErr: true},
		{input: "0:30 am", wantErr: true},
		{input: "9:75 am", wantErr: true},
		{input: "9am", wantErr: true},
		{input: "9:00", wantErr: true},
		{input: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseClock12(tt.input)
		if tt.wantErr {
			require.Error(t, err, tt.input)
			var formatErr *FormatError
			require.ErrorAs(t, err, &formatErr, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		require.Equal(t, tt.want, got, tt.input)
	}
}

func TestParseClock24(t *testing.T) {
	tests := []struct {
		input   string
		want    int32
		wantErr bool
	}{
		{input: "00:00:00", want: 0},
		{input: "09:00:00", want: 32400},
		{input: "9:00:00", want: 32400},
		{input: "17:30:00", want: 63000},
		{input: "23:59:59", want: 86399},
		{input: "24:00:00", wantErr: true},
		{input: "12:60:00", wantErr: true},
		{input: "12:00:61", wantErr: true},
		{input: "12:00", wantErr: true},
		{input: "noon", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseClock24(tt.input)
		if tt.wantErr {
			require.Error(t, err, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		require.Equal(t, tt.want, got, tt.input)
	}
}

func TestDayToInt(t *testing.T) {
	for input, want := range map[string]int32{
		"Mo": 1, "Mon": 1, "Monday": 1,
		"Thu": 4,
		"Su": 7, "Sun": 7, "Sunday": 7,
	} {
		got, ok := DayToInt(input)
		require.True(t, ok, input)
		require.Equal(t, want, got, input)
	}

	for _, input := range []string{"mon", "MON", "Mondays", "Funday", ""} {
		_, ok := DayToInt(input)
		require.False(t, ok, input)
	}
}
