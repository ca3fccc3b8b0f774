package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnIndex(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"A", 0},
		{"B", 1},
		{"Z", 25},
		{"AA", 26},
		{"AZ", 51},
		{"BA", 52},
		{"ZZ", 701},
		{"AAA", 702},
		{"c", 2},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ColumnIndex(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("rejects empty and non-letters", func(t *testing.T) {
		_, err := ColumnIndex("")
		assert.ErrorIs(t, err, ErrInvalidColumn)
		_, err = ColumnIndex("A1")
		assert.ErrorIs(t, err, ErrInvalidColumn)
	})
}

func TestColumnLetters(t *testing.T) {
	for _, letters := range []string{"A", "Z", "AA", "AZ", "BA", "ZZ", "AAA"} {
		idx, err := ColumnIndex(letters)
		require.NoError(t, err)
		assert.Equal(t, letters, ColumnLetters(idx))
	}
	assert.Equal(t, "", ColumnLetters(-1))
}

func TestParseRange(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want Range
	}{
		{
			name: "sheet qualified rectangle",
			in:   "Sheet1!A1:B10",
			want: Range{Sheet: "Sheet1", StartRow: 0, EndRow: 10, StartCol: 0, EndCol: 2},
		},
		{
			name: "single cell",
			in:   "Data!C3",
			want: Range{Sheet: "Data", StartRow: 2, EndRow: 3, StartCol: 2, EndCol: 3},
		},
		{
			name: "bare rectangle without sheet",
			in:   "A1:D4",
			want: Range{StartRow: 0, EndRow: 4, StartCol: 0, EndCol: 4},
		},
		{
			name: "whole columns",
			in:   "Sheet1!A:C",
			want: Range{Sheet: "Sheet1", StartRow: Open, EndRow: Open, StartCol: 0, EndCol: 3},
		},
		{
			name: "open end row",
			in:   "Sheet1!B2:D",
			want: Range{Sheet: "Sheet1", StartRow: 1, EndRow: Open, StartCol: 1, EndCol: 4},
		},
		{
			name: "quoted sheet name",
			in:   "'My Sheet'!A1:B2",
			want: Range{Sheet: "My Sheet", StartRow: 0, EndRow: 2, StartCol: 0, EndCol: 2},
		},
		{
			name: "sheet only spans everything",
			in:   "Summary",
			want: Range{Sheet: "Summary", StartRow: Open, EndRow: Open, StartCol: Open, EndCol: Open},
		},
		{
			name: "sheet name with trailing digits is not a cell",
			in:   "Sheet1",
			want: Range{Sheet: "Sheet1", StartRow: Open, EndRow: Open, StartCol: Open, EndCol: Open},
		},
		{
			name: "numeric sheet name",
			in:   "2024",
			want: Range{Sheet: "2024", StartRow: Open, EndRow: Open, StartCol: Open, EndCol: Open},
		},
		{
			name: "multi letter columns",
			in:   "Wide!AA1:AB2",
			want: Range{Sheet: "Wide", StartRow: 0, EndRow: 2, StartCol: 26, EndCol: 28},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseRange(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("rejects invalid references", func(t *testing.T) {
		for _, in := range []string{"", "Sheet1!", "Sheet1!A0", "Sheet1!1x:2"} {
			_, err := ParseRange(in)
			assert.ErrorIs(t, err, ErrInvalidRange, "input %q", in)
		}
	})
}

func TestRange_Bounded(t *testing.T) {
	r, err := ParseRange("Sheet1!A:C")
	require.NoError(t, err)

	b := r.Bounded()
	assert.Equal(t, int64(0), b.StartRow)
	assert.Equal(t, DefaultRowCount, b.EndRow)
	assert.Equal(t, int64(0), b.StartCol)
	assert.Equal(t, int64(3), b.EndCol)

	// Already closed ranges are untouched.
	r2, err := ParseRange("Sheet1!B2:C4")
	require.NoError(t, err)
	assert.Equal(t, r2, r2.Bounded())
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Data", SheetName("Data!A1:B2", "Sheet1"))
	assert.Equal(t, "Sheet1", SheetName("A1:B2", "Sheet1"))
	assert.Equal(t, "My Sheet", SheetName("'My Sheet'!A1", "Sheet1"))
	assert.Equal(t, "Data", SheetName("Data", "Sheet1"))
}
