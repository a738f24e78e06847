package cli

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// clip is a decoded audio file, deinterleaved and scaled to [-1, 1)
type clip struct {
	SampleRate int
	BitDepth   int
	Channels   [][]float32
}

func (c *clip) frames() int {
	if len(c.Channels) == 0 {
		return 0
	}
	return len(c.Channels[0])
}

func fullScale(bitDepth int) float64 {
	return float64(int64(1) << (bitDepth - 1))
}

func readWAV(path string) (*clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, errors.New("input is not a valid WAV audio file")
	}
	bitDepth := int(decoder.BitDepth)
	if bitDepth != 16 && bitDepth != 24 && bitDepth != 32 {
		return nil, fmt.Errorf("unsupported bit depth: %d", bitDepth)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	numChans := int(decoder.NumChans)
	if numChans <= 0 {
		return nil, fmt.Errorf("unsupported number of channels: %d", numChans)
	}
	frames := len(buf.Data) / numChans
	scale := fullScale(bitDepth)

	c := &clip{
		SampleRate: int(decoder.SampleRate),
		BitDepth:   bitDepth,
		Channels:   make([][]float32, numChans),
	}
	for ch := range c.Channels {
		c.Channels[ch] = make([]float32, frames)
	}
	for i := 0; i < frames*numChans; i++ {
		c.Channels[i%numChans][i/numChans] = float32(float64(buf.Data[i]) / scale)
	}
	return c, nil
}

func writeWAV(path string, c *clip) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	numChans := len(c.Channels)
	frames := c.frames()
	scale := fullScale(c.BitDepth)

	data := make([]int, frames*numChans)
	for i := range data {
		v := math.Round(float64(c.Channels[i%numChans][i/numChans]) * scale)
		data[i] = int(math.Max(-scale, math.Min(scale-1, v)))
	}

	enc := wav.NewEncoder(f, c.SampleRate, c.BitDepth, numChans, 1)
	buf := &audio.IntBuffer{
		Data:           data,
		Format:         &audio.Format{SampleRate: c.SampleRate, NumChannels: numChans},
		SourceBitDepth: c.BitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("failed to write to WAV encoder: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV: %w", err)
	}
	return f.Close()
}
