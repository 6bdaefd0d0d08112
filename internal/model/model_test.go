package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPartyIDAcceptsNumberAndString(t *testing.T) {
	var parties []Party
	err := json.Unmarshal([]byte(`[{"id":1,"name":"Launch"},{"id":"abc","name":"Retro"},{"id":null}]`), &parties)
	require.NoError(t, err)
	require.Equal(t, PartyID("1"), parties[0].ID)
	require.Equal(t, PartyID("abc"), parties[1].ID)
	require.Equal(t, PartyID(""), parties[2].ID)

	err = json.Unmarshal([]byte(`{"id":{"x":1}}`), &Party{})
	require.Error(t, err)
}

func TestNormalizeDate(t *testing.T) {
	plus9 := time.FixedZone("KST", 9*60*60)

	tests := []struct {
		in   string
		want string
	}{
		{"2024-01-01", "2024-01-01T00:00:00.000Z"},
		{" 2024-03-15 ", "2024-03-15T00:00:00.000Z"},
		{"2024-01-01T09:30", "2024-01-01T00:30:00.000Z"},
		{"2024-01-01T09:30:15", "2024-01-01T00:30:15.000Z"},
		{"2024-01-01T12:00:00.250+02:00", "2024-01-01T10:00:00.250Z"},
		{"2024-01-01T00:00:00.000Z", "2024-01-01T00:00:00.000Z"},
	}
	for _, tc := range tests {
		got, err := NormalizeDate(tc.in, plus9)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.want, got, tc.in)
	}

	for _, bad := range []string{"", "tomorrow", "2024-13-01", "01/02/2024"} {
		_, err := NormalizeDate(bad, plus9)
		require.Error(t, err, bad)
	}
}

func TestDisplayDate(t *testing.T) {
	require.Equal(t, "2024-01-01", DisplayDate("2024-01-01T00:00:00.000Z"))
	require.Equal(t, "2024", DisplayDate("2024"))
	require.Equal(t, "2024-01-01", Party{Date: "2024-01-01T10:00:00Z"}.DisplayDate())
}

func TestFieldsTrimmedAndComplete(t *testing.T) {
	f := PartyFields{Name: "  Launch ", Description: "\tKickoff", Date: "2024-01-01", Location: " HQ"}.Trimmed()
	require.Equal(t, PartyFields{Name: "Launch", Description: "Kickoff", Date: "2024-01-01", Location: "HQ"}, f)
	require.True(t, f.Complete())

	f.Location = ""
	require.False(t, f.Complete())
	require.False(t, PartyFields{Name: "   "}.Trimmed().Complete())
}
