package numeric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize_Strings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *float64
	}{
		{"plain number", "1234.5", Ptr(1234.5)},
		{"thousands separators", "1,234.50", Ptr(1234.5)},
		{"currency rupee", "₹1,234.50", Ptr(1234.5)},
		{"currency dollar", "$99.99", Ptr(99.99)},
		{"percent sign", "12.4%", Ptr(12.4)},
		{"negative percent", "-3.25%", Ptr(-3.25)},
		{"surrounding whitespace", "  42.1  ", Ptr(42.1)},
		{"empty string", "", nil},
		{"only markers", "₹ ,%", nil},
		{"garbage", "N/A", nil},
		{"mixed garbage", "12abc", nil},
		{"rounds to 2 decimals", "3.14159", Ptr(3.14)},
		{"rounds half away from zero", "2.005", Ptr(2.01)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeDefault(tt.input)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 1e-9)
		})
	}
}

func TestSanitize_Numbers(t *testing.T) {
	got := SanitizeDefault(float64(110))
	require.NotNil(t, got)
	assert.Equal(t, 110.0, *got)

	got = SanitizeDefault(42)
	require.NotNil(t, got)
	assert.Equal(t, 42.0, *got)

	got = SanitizeDefault(float32(1.5))
	require.NotNil(t, got)
	assert.Equal(t, 1.5, *got)

	got = SanitizeDefault(int64(-7))
	require.NotNil(t, got)
	assert.Equal(t, -7.0, *got)
}

func TestSanitize_NilInputs(t *testing.T) {
	assert.Nil(t, SanitizeDefault(nil))

	var sp *string
	assert.Nil(t, SanitizeDefault(sp))

	var fp *float64
	assert.Nil(t, SanitizeDefault(fp))

	s := "55.5"
	got := SanitizeDefault(&s)
	require.NotNil(t, got)
	assert.Equal(t, 55.5, *got)
}

func TestSanitize_NaN(t *testing.T) {
	assert.Nil(t, SanitizeDefault(math.NaN()))
	assert.Nil(t, SanitizeDefault("NaN"))
}

func TestSanitize_Clamping(t *testing.T) {
	got := Sanitize(1e12, DefaultMaxMagnitude)
	require.NotNil(t, got)
	assert.Equal(t, 9999999999.99, *got)

	got = Sanitize(-1e12, DefaultMaxMagnitude)
	require.NotNil(t, got)
	assert.Equal(t, -9999999999.99, *got)

	// Infinity saturates like any out-of-range value
	got = Sanitize(math.Inf(1), DefaultMaxMagnitude)
	require.NotNil(t, got)
	assert.Equal(t, 9999999999.99, *got)

	got = Sanitize(math.Inf(-1), DefaultMaxMagnitude)
	require.NotNil(t, got)
	assert.Equal(t, -9999999999.99, *got)

	// Custom bound
	got = Sanitize("150", 100)
	require.NotNil(t, got)
	assert.Equal(t, 100.0, *got)
}

func TestSanitize_NeverPanics(t *testing.T) {
	// Arbitrary types are coerced via their string form, then degrade to nil
	assert.NotPanics(t, func() {
		assert.Nil(t, SanitizeDefault(struct{ A int }{1}))
		assert.Nil(t, SanitizeDefault([]string{"x"}))
		assert.Nil(t, SanitizeDefault(map[string]int{}))
	})

	// bool prints as "true"/"false" — unparseable, nil
	assert.Nil(t, SanitizeDefault(true))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 10.0, Round2(10.0000001))
	assert.Equal(t, -2.35, Round2(-2.345))
	assert.Equal(t, 0.0, Round2(0))
}
