package common

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestUUIDRoundTrip(t *testing.T) {
	id, err := ToUUID(" 6f1c2f8e-4a52-4d8b-9d0c-2b0f4f1f7a11 ")
	require.NoError(t, err)
	require.True(t, id.Valid)
	require.Equal(t, "6f1c2f8e-4a52-4d8b-9d0c-2b0f4f1f7a11", UUIDString(id))
	require.Equal(t, [16]byte(uuid.MustParse("6f1c2f8e-4a52-4d8b-9d0c-2b0f4f1f7a11")), id.Bytes)

	upper, err := ToUUID("6F1C2F8E-4A52-4D8B-9D0C-2B0F4F1F7A11")
	require.NoError(t, err)
	require.Equal(t, id, upper)

	for _, bad := range []string{"not-a-uuid", "", "6f1c2f8e-4a52-4d8b-9d0c"} {
		id, err := ToUUID(bad)
		require.Error(t, err, bad)
		require.False(t, id.Valid)
	}
}

func TestTextTreatsBlankAsNull(t *testing.T) {
	require.False(t, Text("  ").Valid)
	require.Equal(t, "27AAACB1234F1Z5", TextValue(Text("27AAACB1234F1Z5")))
}

func TestDateDropsClock(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	d := Date(time.Date(2026, 3, 31, 23, 45, 0, 0, loc))
	require.Equal(t, "2026-03-31", d.Time.Format(time.DateOnly))
}

func TestParsePaginationClamps(t *testing.T) {
	r := httptest.NewRequest("GET", "/?page=3&limit=500", nil)
	page, per := ParsePagination(r, 20)
	require.Equal(t, 3, page)
	require.Equal(t, MaxPerPage, per)
	require.Equal(t, int32(200), Offset(page, per))

	p := NewPagination(1, 20, 41)
	require.Equal(t, 3, p.TotalPages)
}
