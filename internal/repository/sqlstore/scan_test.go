package sqlstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galamath/galamath/internal/models"
)

func TestTimestampScan(t *testing.T) {
	want := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	tests := []struct {
		name    string
		src     any
		want    time.Time
		invalid bool
	}{
		{name: "time value", src: want.In(time.FixedZone("X", 3600)), want: want},
		{name: "rfc3339", src: "2025-01-02T03:04:05Z", want: want},
		{name: "sql datetime", src: []byte("2025-01-02 03:04:05"), want: want},
		{name: "sqlite with zone", src: "2025-01-02 04:04:05+01:00", want: want},
		{name: "unix seconds", src: want.Unix(), want: want},
		{name: "unix seconds as text", src: "1735787045", want: want},
		{name: "garbage", src: "next tuesday", invalid: true},
		{name: "null", src: nil, invalid: true},
		{name: "zero time", src: time.Time{}, invalid: true},
		{name: "unsupported type", src: 3.5, invalid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts timestamp
			require.NoError(t, ts.Scan(tt.src))
			assert.Equal(t, tt.invalid, ts.Invalid)
			if !tt.invalid {
				assert.True(t, tt.want.Equal(ts.Time), "got %v", ts.Time)
			} else {
				assert.True(t, ts.Time.IsZero())
			}
		})
	}
}

func TestDecodeJSONList(t *testing.T) {
	got, ok := decodeJSONList[models.AnswerRecord]([]byte(`[{"question":"1+1","userAnswer":null,"correctAnswer":2}]`))
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].UserAnswer)
	assert.False(t, got[0].IsCorrect())

	got, ok = decodeJSONList[models.AnswerRecord](nil)
	assert.True(t, ok)
	assert.Empty(t, got)

	got, ok = decodeJSONList[models.AnswerRecord]([]byte("null"))
	assert.True(t, ok)
	assert.NotNil(t, got)

	got, ok = decodeJSONList[models.AnswerRecord]([]byte(`{"oops":`))
	assert.False(t, ok)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
