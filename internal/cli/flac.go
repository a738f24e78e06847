package cli

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tphakala/flac"
)

// readClip decodes WAV or FLAC input, chosen by extension
func readClip(path string) (*clip, error) {
	if strings.EqualFold(filepath.Ext(path), ".flac") {
		return readFLAC(path)
	}
	return readWAV(path)
}

func readFLAC(path string) (*clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	decoder, err := flac.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("failed to open FLAC %s: %w", path, err)
	}
	if decoder.NChannels <= 0 {
		return nil, fmt.Errorf("unsupported number of channels: %d", decoder.NChannels)
	}

	c := &clip{
		SampleRate: decoder.SampleRate,
		BitDepth:   decoder.BitsPerSample,
		Channels:   make([][]float32, decoder.NChannels),
	}
	for {
		frame, err := decoder.Next()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
		if err := c.appendPCM(frame); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// appendPCM appends interleaved little-endian integer PCM
func (c *clip) appendPCM(data []byte) error {
	width := c.BitDepth / 8
	switch c.BitDepth {
	case 16, 24, 32:
	default:
		return fmt.Errorf("unsupported bit depth: %d", c.BitDepth)
	}

	numChans := len(c.Channels)
	scale := fullScale(c.BitDepth)
	stride := width * numChans
	for i := 0; i+stride <= len(data); i += stride {
		for ch := range c.Channels {
			b := data[i+ch*width:]
			var sample int32
			switch c.BitDepth {
			case 16:
				sample = int32(int16(binary.LittleEndian.Uint16(b)))
			case 24:
				// shift into the top bytes to sign-extend
				sample = (int32(b[0])<<8 | int32(b[1])<<16 | int32(b[2])<<24) >> 8
			case 32:
				sample = int32(binary.LittleEndian.Uint32(b))
			}
			c.Channels[ch] = append(c.Channels[ch], float32(float64(sample)/scale))
		}
	}
	return nil
}
