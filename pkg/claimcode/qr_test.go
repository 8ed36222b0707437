package claimcode

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_QRPayload_roundTrip(t *testing.T) {
	expires := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	data, err := EncodeQRPayload(
		"LEO-A1B2-LX3K9P-7QZ2MN",
		"a1b2c3d4",
		`Go Meetup: "Generics" & More!`,
		"VeLeo",
		expires,
	)
	require.NoError(t, err)

	payload, err := DecodeQRPayload(data)
	require.NoError(t, err)
	require.Equal(t, "LEO-A1B2-LX3K9P-7QZ2MN", payload.Code)
	require.Equal(t, "a1b2c3d4", payload.Event)
	require.Equal(t, `Go Meetup: "Generics" & More!`, payload.Name)
	require.Equal(t, "2026-03-01T12:00:00Z", payload.Expires)
	require.Equal(t, "VeLeo", payload.Issuer)
}

func Test_DecodeQRPayload_invalid(t *testing.T) {
	_, err := DecodeQRPayload("not a json document")
	require.Error(t, err)

	_, err = DecodeQRPayload(`{"event": "a1b2c3d4"}`)
	require.Error(t, err)
}

func Test_ImageURL(t *testing.T) {
	url := ImageURL("https://api.qrserver.com/v1/create-qr-code/", `{"code":"LEO-A1B2"}`, 300)

	require.True(t, strings.HasPrefix(url, "https://api.qrserver.com/v1/create-qr-code/?size=300x300&data="))
	require.NotContains(t, url, `"`)
}
