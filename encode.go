package segment

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"image"
	"image/png"
	"strings"
)

// dataURLPrefix is the scheme every encoded mask manifest carries.
const dataURLPrefix = "data:image/png;base64,"

// Manifest is the portable encoding of a room mask handed to external
// object storage. The fog-reveal renderer decodes DataURL with any PNG
// decoder; it needs no access to the segmentation engine. Key is a
// content hash, stable across re-encodes of identical coverage, used as
// the storage object key.
type Manifest struct {
	RoomID  string `json:"roomId"`
	Key     string `json:"key"`
	DataURL string `json:"dataUrl"`
}

// EncodeMask serializes the mask into a PNG data URL manifest. The PNG
// is a white image whose alpha channel carries the mask, so it
// composites directly over the map in the reveal renderer.
// Returns ErrEmptyMask for a nil mask.
func EncodeMask(m *RoomMask) (Manifest, error) {
	if m == nil {
		return Manifest{}, ErrEmptyMask
	}
	w, h := m.Width(), m.Height()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	data := m.Data()
	for i, a := range data {
		p := img.Pix[i*4:]
		p[0] = 255
		p[1] = 255
		p[2] = 255
		p[3] = a
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return Manifest{}, fmt.Errorf("segment: encode mask png: %w", err)
	}

	sum := sha256.Sum256(buf.Bytes())
	return Manifest{
		Key:     "mask-" + hex.EncodeToString(sum[:8]),
		DataURL: dataURLPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()),
	}, nil
}

// DecodeMask reverses EncodeMask, reconstructing a RoomMask from a
// manifest's PNG data URL.
func DecodeMask(man Manifest) (*RoomMask, error) {
	payload, ok := strings.CutPrefix(man.DataURL, dataURLPrefix)
	if !ok {
		return nil, fmt.Errorf("segment: manifest is not a png data url")
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("segment: decode mask payload: %w", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("segment: decode mask png: %w", err)
	}

	bounds := img.Bounds()
	m := NewRoomMask(bounds.Dx(), bounds.Dy())
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			_, _, _, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// a is 0-65535, shift by 8 to get 0-255
			m.Set(x, y, uint8(a>>8))
		}
	}
	return m, nil
}
