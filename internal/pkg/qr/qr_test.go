package qr

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHallTicketPayload(t *testing.T) {
	payload := HallTicketPayload("HT-00231", "REG-2024-00042", "Asha Rao", "Semester 3 Finals")
	assert.Equal(t, "HALL_TICKET:HT-00231|REG:REG-2024-00042|NAME:Asha Rao|EXAM:Semester 3 Finals", payload)
}

func TestIDCardPayload(t *testing.T) {
	payload := IDCardPayload("CARD-00017", "REG-2024-00042", "Asha Rao", "B.Tech Computer Science", "2028-06-30")
	assert.Equal(t, "ID:CARD-00017|REG:REG-2024-00042|NAME:Asha Rao|PROGRAM:B.Tech Computer Science|VALID:2028-06-30", payload)
}

func TestEncodePNG(t *testing.T) {
	png, err := EncodePNG("HALL_TICKET:HT-00231|REG:REG-2024-00042")
	require.NoError(t, err)
	require.NotEmpty(t, png)

	// PNG magic bytes
	assert.True(t, bytes.HasPrefix(png, []byte{0x89, 'P', 'N', 'G'}))
}
