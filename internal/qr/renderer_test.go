package qr

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusd/internal/models"
)

func TestPayloadFormat(t *testing.T) {
	s := models.QRSession{CodeData: "abcd1234abcd1234", CourseID: "CS201", LectureID: "lec-1"}
	assert.Equal(t, "abcd1234abcd1234|CS201|lec-1", Payload(s))
}

func TestDataURLIsDecodablePNG(t *testing.T) {
	s := models.NewQRSession("CS201", "fac-1", time.Now())

	url, err := NewPNGRenderer().DataURL(s)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "data:image/png;base64,"))

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, "data:image/png;base64,"))
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG", string(raw[:4]))
}
