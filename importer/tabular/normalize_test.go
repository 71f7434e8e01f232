package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeColumnName(t *testing.T) {
	cases := map[string]string{
		"US Number":       "US_NUMBER",
		" US-Number ":     "US_NUMBER",
		"us/number":       "US_NUMBER",
		"US  Number":      "US_NUMBER",
		"(Description)":   "DESCRIPTION",
		"US_NUMBER":       "US_NUMBER",
		"__US__Number__":  "US_NUMBER",
		"Strat.Unit,Name": "STRAT_UNIT_NAME",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeColumnName(in), "input %q", in)
	}
}

func TestIsNull(t *testing.T) {
	assert.True(t, IsNull(""))
	assert.True(t, IsNull("NA"))
	assert.True(t, IsNull("N/A"))
	assert.True(t, IsNull("  "))
	assert.False(t, IsNull("US001"))
}
