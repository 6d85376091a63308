// Package qr builds the QR payloads embedded in hall tickets and student ID
// cards and renders them as PNG images. Payloads are plain pipe-delimited
// text; verification re-checks the fields against the database rather than
// validating the code cryptographically.
package qr

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// PNGSize is the edge length in pixels of generated QR images.
const PNGSize = 256

// HallTicketPayload builds the payload encoded on a hall ticket.
func HallTicketPayload(ticketNumber, registrationNumber, studentName, examName string) string {
	return fmt.Sprintf("HALL_TICKET:%s|REG:%s|NAME:%s|EXAM:%s",
		ticketNumber, registrationNumber, studentName, examName)
}

// IDCardPayload builds the payload encoded on a student ID card.
func IDCardPayload(cardNumber, registrationNumber, studentName, programName, validity string) string {
	return fmt.Sprintf("ID:%s|REG:%s|NAME:%s|PROGRAM:%s|VALID:%s",
		cardNumber, registrationNumber, studentName, programName, validity)
}

// EncodePNG renders a payload as a PNG image.
func EncodePNG(payload string) ([]byte, error) {
	png, err := qrcode.Encode(payload, qrcode.Medium, PNGSize)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR payload: %w", err)
	}
	return png, nil
}
