package media

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"slices"
)

// riffChunk is one named chunk of a RIFF container. Chunk payloads are
// padded to even length on the wire.
type riffChunk struct {
	name [4]byte
	data []byte
}

func newRiffChunk(name [4]byte, data []byte) (*riffChunk, error) {
	for _, b := range name {
		if b < 32 || b > 126 {
			return nil, errors.New("invalid chunk name")
		}
	}
	return &riffChunk{name: name, data: data}, nil
}

func (c *riffChunk) encode() []byte {
	payload := len(c.data)
	total := 8 + payload
	if payload%2 != 0 {
		total++
	}

	buf := make([]byte, 0, total)
	buf = append(buf, c.name[:]...)
	size := make([]byte, 4)
	binary.LittleEndian.PutUint32(size, uint32(payload))
	buf = append(buf, size...)
	buf = append(buf, c.data...)
	if payload%2 != 0 {
		buf = append(buf, 0)
	}
	return buf
}

// splitWebp validates the RIFF/WEBP header and returns the chunk list.
func splitWebp(data []byte) ([]*riffChunk, error) {
	if len(data) < 12 {
		return nil, errors.New("invalid file size")
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WEBP" {
		return nil, errors.New("not webp file")
	}

	expectedSize := binary.LittleEndian.Uint32(data[4:8]) + 8
	if uint32(len(data)) < expectedSize {
		return nil, errors.New("corrupted file")
	}

	var chunks []*riffChunk
	offset := 12

	for offset+8 <= len(data) {
		var name [4]byte
		copy(name[:], data[offset:offset+4])
		size := binary.LittleEndian.Uint32(data[offset+4 : offset+8])
		offset += 8

		if offset+int(size) > len(data) {
			return nil, errors.New("invalid chunk size")
		}

		payload := make([]byte, size)
		copy(payload, data[offset:offset+int(size)])
		offset += int(size)

		if size%2 != 0 && offset < len(data) {
			offset++
		}

		chunks = append(chunks, &riffChunk{name: name, data: payload})

		if offset >= int(expectedSize) {
			break
		}
	}

	return chunks, nil
}

// VP8X feature flag bits.
const (
	vp8xAnimation byte = 0b10
	vp8xXMP       byte = 0b100
	vp8xEXIF      byte = 0b1000
	vp8xAlpha     byte = 0b10000
	vp8xICC       byte = 0b100000
)

// joinWebp reassembles chunks into a webp file, regenerating the VP8X
// extended-features header from what the chunks actually carry.
func joinWebp(chunks []*riffChunk) []byte {
	vp8xChunk := []byte{
		'V', 'P', '8', 'X',
		0x0A, 0x00, 0x00, 0x00,
		0x00,
		0x00, 0x00, 0x00,
		0x00, 0x00, 0x00,
		0x00, 0x00, 0x00,
	}
	var flags *byte
	var dimensions *[2]uint32

	filtered := make([]*riffChunk, 0, len(chunks))
	for _, c := range chunks {
		if string(c.name[:]) == "VP8X" {
			continue
		}
		switch string(c.name[:]) {
		case "VP8 ":
			width := uint32(binary.LittleEndian.Uint16(c.data[6:8]) & 0x3FFF)
			height := uint32(binary.LittleEndian.Uint16(c.data[8:10]) & 0x3FFF)
			dimensions = &[2]uint32{width, height}
		case "VP8L":
			header := binary.LittleEndian.Uint32(c.data[1:5])
			if (header>>28)&1 == 1 {
				orFlag(&flags, vp8xAlpha)
			}
			dimensions = &[2]uint32{(header & 0x3FFF) + 1, ((header >> 14) & 0x3FFF) + 1}
		case "ANMF":
			width := fromU24LE(c.data[7:10]) + 1
			height := fromU24LE(c.data[10:13]) + 1
			dimensions = &[2]uint32{width, height}
			orFlag(&flags, vp8xAnimation)
		case "XMP ":
			orFlag(&flags, vp8xXMP)
		case "EXIF":
			orFlag(&flags, vp8xEXIF)
		case "ALPH":
			orFlag(&flags, vp8xAlpha)
		case "ICCP":
			orFlag(&flags, vp8xICC)
		}
		filtered = append(filtered, c)
	}

	data := []byte{'R', 'I', 'F', 'F', 0, 0, 0, 0, 'W', 'E', 'B', 'P'}

	if flags != nil && dimensions != nil {
		vp8xChunk[8] = *flags
		copy(vp8xChunk[12:15], toU24LE(dimensions[0]-1))
		copy(vp8xChunk[15:18], toU24LE(dimensions[1]-1))
		data = append(data, vp8xChunk...)
	}

	for _, c := range filtered {
		data = append(data, c.encode()...)
	}

	binary.LittleEndian.PutUint32(data[4:8], uint32(len(data)-8))
	return data
}

func toU24LE(n uint32) []byte {
	return []byte{byte(n), byte(n >> 8), byte(n >> 16)}
}

func fromU24LE(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
}

func orFlag(flags **byte, mask byte) {
	if *flags == nil {
		tmp := byte(0)
		*flags = &tmp
	}
	**flags |= mask
}

// AddExifToWebp embeds sticker pack name and publisher as the EXIF chunk
// WhatsApp reads, replacing any existing EXIF data.
func AddExifToWebp(webp []byte, title string, description string) ([]byte, error) {
	meta, err := json.Marshal(map[string]any{
		"sticker-pack-name":      title,
		"sticker-pack-publisher": description,
	})
	if err != nil {
		return nil, err
	}

	// TIFF header plus one undefined-type IFD entry pointing at the JSON
	// payload.
	header := []byte{
		0x49, 0x49, 0x2A, 0x00,
		0x08, 0x00, 0x00, 0x00,
		0x01, 0x00,
		0x41, 0x57, 0x07, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x16, 0x00, 0x00, 0x00,
	}
	binary.LittleEndian.PutUint32(header[14:], uint32(len(meta)))

	exif, err := newRiffChunk([4]byte{'E', 'X', 'I', 'F'}, append(header, meta...))
	if err != nil {
		return nil, err
	}
	chunks, err := splitWebp(webp)
	if err != nil {
		return nil, err
	}

	chunks = slices.DeleteFunc(chunks, func(c *riffChunk) bool {
		return c.name == [4]byte{'E', 'X', 'I', 'F'}
	})
	chunks = append(chunks, exif)

	return joinWebp(chunks), nil
}
