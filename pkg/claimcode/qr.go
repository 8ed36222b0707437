package claimcode

import (
	"encoding/json"
	"fmt"
	"net/url"
	"time"
)

// QRPayload is the document embedded in printable claim QR images. Scanners
// decode it back with DecodeQRPayload before submitting the code.
type QRPayload struct {
	Code    string `json:"code"`
	Event   string `json:"event"`
	Name    string `json:"name"`
	Expires string `json:"expires"`
	Issuer  string `json:"issuer"`
}

func EncodeQRPayload(code, eventID, eventName, issuer string, expires time.Time) (string, error) {
	b, err := json.Marshal(QRPayload{
		Code:    code,
		Event:   eventID,
		Name:    eventName,
		Expires: expires.UTC().Format(time.RFC3339),
		Issuer:  issuer,
	})
	if err != nil {
		return "", err
	}

	return string(b), nil
}

func DecodeQRPayload(data string) (*QRPayload, error) {
	var payload QRPayload
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		return nil, err
	}

	if payload.Code == "" {
		return nil, fmt.Errorf("payload carries no code")
	}

	return &payload, nil
}

// ImageURL builds a link to a rendered QR image for the given payload.
func ImageURL(endpoint, data string, size int) string {
	return fmt.Sprintf("%s?size=%dx%d&data=%s", endpoint, size, size, url.QueryEscape(data))
}
