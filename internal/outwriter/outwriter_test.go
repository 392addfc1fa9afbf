package outwriter

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/cohort-tools/cohort/internal/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFormatters(t *testing.T) {
	fmtFloat, fmtDelta := createFormatters(1)
	assert.Equal(t, "7000.5", fmtFloat(7000.5))
	assert.Equal(t, "+500.0", fmtDelta(500))
	assert.Equal(t, "-500.0", fmtDelta(-500))

	fmtFloat, fmtDelta = createFormatters(0)
	assert.Equal(t, "7001", fmtFloat(7000.5))
	assert.Equal(t, "+0", fmtDelta(0))
}

func TestGetMaxTableIDWidth(t *testing.T) {
	tests := []struct {
		name  string
		width int
		want  int
	}{
		{name: "narrow clamps to minimum", width: 60, want: 12},
		{name: "mid-size terminal", width: 110, want: 30},
		{name: "wide clamps to maximum", width: 200, want: 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &contract.Config{Width: tt.width}
			assert.Equal(t, tt.want, getMaxTableIDWidth(cfg))
		})
	}
}

func TestTruncateID(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		maxWidth int
		want     string
	}{
		{name: "short id unchanged", id: "s1", maxWidth: 12, want: "s1"},
		{name: "exact fit unchanged", id: "abcdefghijkl", maxWidth: 12, want: "abcdefghijkl"},
		{name: "long id gets ellipsis", id: "student-2026-cohort-a-017", maxWidth: 12, want: "student-2..."},
		{name: "tiny width hard cut", id: "abcdef", maxWidth: 3, want: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, truncateID(tt.id, tt.maxWidth))
		})
	}
}

func TestWriteCSVWithHeader(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"a", "b"}, func(w *csv.Writer) error {
		return w.Write([]string{"1", "2"})
	})
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	err := writeJSON(&buf, map[string]int{"score": 7000})
	require.NoError(t, err)
	assert.JSONEq(t, `{"score": 7000}`, buf.String())
}
