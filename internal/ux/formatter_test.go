package ux

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carelane/carectl/internal/appointment"
)

func TestNewFormatter_UnknownFormat(t *testing.T) {
	_, err := NewFormatter("xml", nil)
	require.Error(t, err)
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f, err := NewFormatter("json", &FormatterOptions{Writer: &buf})
	require.NoError(t, err)

	require.NoError(t, f.Format(map[string]string{"status": "Scheduled"}))

	var out map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "Scheduled", out["status"])
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	f, err := NewFormatter("yaml", &FormatterOptions{Writer: &buf})
	require.NoError(t, err)

	require.NoError(t, f.Format(map[string]int{"count": 3}))
	assert.Contains(t, buf.String(), "count: 3")
}

func TestTextFormatter_StringerAndFallback(t *testing.T) {
	var buf bytes.Buffer
	f, err := NewFormatter("text", &FormatterOptions{Writer: &buf})
	require.NoError(t, err)

	table := Table{Headers: []string{"ID", "NAME"}, Rows: [][]string{{"1", "Okafor"}}}
	require.NoError(t, f.Format(table))
	assert.Contains(t, buf.String(), "Okafor")

	buf.Reset()
	require.NoError(t, f.Format(map[string]string{"k": "v"}), "non-stringer falls back to yaml")
	assert.Contains(t, buf.String(), "k: v")
}

func TestTable_Alignment(t *testing.T) {
	table := Table{
		Headers: []string{"ID", "STATUS"},
		Rows: [][]string{
			{"appt-1", "Scheduled"},
			{"a", "Cancelled"},
		},
	}
	out := table.String()
	assert.Contains(t, out, "appt-1")
	assert.Contains(t, out, "Cancelled")
}

func TestStatusBadge_CoversAllStatuses(t *testing.T) {
	for _, s := range []appointment.Status{
		appointment.StatusScheduled,
		appointment.StatusRescheduled,
		appointment.StatusCompleted,
		appointment.StatusCancelled,
		appointment.StatusUnknown,
	} {
		assert.NotEmpty(t, StatusBadge(s))
	}
}
