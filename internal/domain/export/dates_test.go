package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDotNetDate(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  *time.Time
	}{
		{
			name:  "plain milliseconds",
			input: "/Date(1700000000000)/",
			want:  timePtr(time.UnixMilli(1700000000000).UTC()),
		},
		{
			name:  "offset suffix is stripped not converted",
			input: "/Date(1700000000000+1300)/",
			want:  timePtr(time.UnixMilli(1700000000000).UTC()),
		},
		{
			name:  "negative offset suffix",
			input: "/Date(1700000000000-0500)/",
			want:  timePtr(time.UnixMilli(1700000000000).UTC()),
		},
		{
			name:  "negative epoch",
			input: "/Date(-1000)/",
			want:  timePtr(time.UnixMilli(-1000).UTC()),
		},
		{
			name:  "surrounding whitespace tolerated",
			input: "  /Date(0)/  ",
			want:  timePtr(time.UnixMilli(0).UTC()),
		},
		{name: "garbage string", input: "yesterday", want: nil},
		{name: "empty string", input: "", want: nil},
		{name: "missing closing slash", input: "/Date(1700000000000)", want: nil},
		{name: "non-numeric body", input: "/Date(abc)/", want: nil},
		{name: "not a string", input: 1700000000000, want: nil},
		{name: "nil", input: nil, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDotNetDate(tt.input)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, got.Equal(*tt.want), "got %v want %v", got, tt.want)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestDotNetDateCellValue(t *testing.T) {
	cell := DotNetDate("/Date(1700000000000)/")
	require.IsType(t, time.Time{}, cell)

	// A failed parse must produce an untyped nil, not a typed nil pointer
	// wrapped in an interface.
	assert.Nil(t, DotNetDate("not a date"))
	assert.Nil(t, DotNetDate(nil))
}

func timePtr(t time.Time) *time.Time {
	return &t
}
