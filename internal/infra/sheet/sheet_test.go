package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-UtilizationReport/internal/domain"
)

func TestParseRange(t *testing.T) {
	cases := []struct {
		in   string
		want Range
	}{
		{"B1", Range{FromRow: 1, FromCol: 2, ToRow: 1, ToCol: 2}},
		{"A2:B18", Range{FromRow: 2, FromCol: 1, ToRow: 18, ToCol: 2}},
		{"a20:h22", Range{FromRow: 20, FromCol: 1, ToRow: 22, ToCol: 8}},
		{"A2:D", Range{FromRow: 2, FromCol: 1, ToRow: 0, ToCol: 4}},
	}

	for _, tc := range cases {
		got, err := ParseRange(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestParseRange_Invalid(t *testing.T) {
	for _, in := range []string{"", "2A", "A1:B2:C3", "B5:A6", "A5:B2", "A1:1"} {
		_, err := ParseRange(in)
		assert.ErrorIs(t, err, ErrInvalidRange, in)
	}
}

func TestRange_String(t *testing.T) {
	assert.Equal(t, "A2:D", MustParseRange("A2:D").String())
	assert.Equal(t, "A20:H22", MustParseRange("A20:H22").String())
	assert.Equal(t, "B1", MustParseRange("B1").String())
}

func TestCollector(t *testing.T) {
	c := NewCollector(MustParseRange("B2:C"))
	c.Put(2, 2, domain.TextCell("Monday"))
	c.Put(4, 3, domain.TextCell("09:00-17:00"))
	// вне диапазона и пустые ячейки не учитываются
	c.Put(1, 2, domain.TextCell("header"))
	c.Put(4, 5, domain.TextCell("ignored"))
	c.Put(9, 2, domain.TextCell(""))

	m := c.Matrix()
	require.Len(t, m, 3)
	assert.Equal(t, "Monday", m[0][0].String())
	assert.True(t, m[0][1].IsEmpty())
	assert.True(t, m[1][0].IsEmpty())
	assert.Equal(t, "09:00-17:00", m[2][1].String())
}

func TestCollector_ClosedRange(t *testing.T) {
	c := NewCollector(MustParseRange("A1:B3"))
	c.Put(1, 1, domain.NumberCell(4))

	m := c.Matrix()
	require.Len(t, m, 3)
	assert.Len(t, m[2], 2)
	assert.Equal(t, 4.0, m[0][0].Number)
}

func TestCollector_EmptyOpenRange(t *testing.T) {
	c := NewCollector(MustParseRange("A2:D"))
	assert.Empty(t, c.Matrix())
}

func TestColumnNumber(t *testing.T) {
	n, err := ColumnNumber("d")
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = ColumnNumber("AB")
	require.NoError(t, err)
	assert.Equal(t, 28, n)

	_, err = ColumnNumber("4")
	assert.ErrorIs(t, err, ErrInvalidRange)
}
