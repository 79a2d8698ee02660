package importer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProcessDays(t *testing.T) {
	tests := []struct {
		input   string
		want    []int32
		wantErr error
	}{
		{input: "Mon", want: []int32{1}},
		{input: "Wed-Sat", want: []int32{3, 4, 5, 6}},
		{input: "Mon-Thu, Sun", want: []int32{1, 2, 3, 4, 7}},
		{input: "Sun, Mon", want: []int32{1, 7}},
		{input: "Sat-Wed", wantErr: errInvalidDayRange},
		{input: "Monday", wantErr: errInvalidDayFormat},
		{input: "Mon-Tuesday", wantErr: errInvalidDayFormat},
		{input: "Xyz", wantErr: errInvalidDayName},
		{input: "Mon-Xyz", wantErr: errInvalidDayName},
		{input: "", wantErr: errInvalidDayFormat},
	}
	for _, tt := range tests {
		got, err := processDays(tt.input)
		if tt.wantErr != nil {
			require.ErrorIs(t, err, tt.wantErr, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		require.Equal(t, tt.want, got, tt.input)
	}
}

func TestProcessTime(t *testing.T) {
	opens, closes, err := processTime("11:30 am - 9 pm")
	require.NoError(t, err)
	require.Equal(t, int32(41400), opens)
	require.Equal(t, int32(75600), closes)

	// A midnight closing reading becomes end-of-day.
	opens, closes, err = processTime("5 pm - 12 am")
	require.NoError(t, err)
	require.Equal(t, int32(61200), opens)
	require.Equal(t, int32(86400), closes)

	_, _, err = processTime("11:30 am")
	require.ErrorIs(t, err, errInvalidTimeFormat)

	_, _, err = processTime("9 am - 5 pm - 7 pm")
	require.ErrorIs(t, err, errInvalidTimeFormat)

	_, _, err = processTime("whenever - 9 pm")
	require.ErrorIs(t, err, errInvalidTimeFormat)
}
