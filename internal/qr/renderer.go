package qr

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"campusd/internal/models"
)

// Payload is the string a student's scanner reads back to the portal.
func Payload(s models.QRSession) string {
	return fmt.Sprintf("%s|%s|%s", s.CodeData, s.CourseID, s.LectureID)
}

// RendererInterface produces a displayable image for an issued session.
type RendererInterface interface {
	DataURL(s models.QRSession) (string, error)
}

type PNGRenderer struct {
	size int
}

func NewPNGRenderer() RendererInterface {
	return &PNGRenderer{size: 256}
}

// DataURL renders the session payload as a PNG data URL ready for an <img>
// tag.
func (r *PNGRenderer) DataURL(s models.QRSession) (string, error) {
	png, err := qrcode.Encode(Payload(s), qrcode.Medium, r.size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
