package process

// Buffer holds one block of audio, processed in place. Channels are
// deinterleaved and all have the same length.
type Buffer struct {
	Channels [][]float32

	storage [][]float32
}

// NewBuffer allocates a buffer able to hold maxBlockSize samples per channel.
// Call SetLength before each block.
func NewBuffer(channels, maxBlockSize int) *Buffer {
	b := &Buffer{
		Channels: make([][]float32, channels),
		storage:  make([][]float32, channels),
	}
	for ch := range b.storage {
		b.storage[ch] = make([]float32, maxBlockSize)
		b.Channels[ch] = b.storage[ch]
	}
	return b
}

// SetLength reslices every channel to n samples without allocating. n is
// capped at the allocated size.
func (b *Buffer) SetLength(n int) {
	for ch := range b.storage {
		if n > len(b.storage[ch]) {
			n = len(b.storage[ch])
		}
	}
	for ch := range b.storage {
		b.Channels[ch] = b.storage[ch][:n]
	}
}

// NumChannels returns the number of channels
func (b *Buffer) NumChannels() int {
	if b == nil {
		return 0
	}
	return len(b.Channels)
}

// NumSamples returns the block length
func (b *Buffer) NumSamples() int {
	if b == nil || len(b.Channels) == 0 {
		return 0
	}
	return len(b.Channels[0])
}

// Clear zeros every sample
func (b *Buffer) Clear() {
	for ch := range b.Channels {
		clear(b.Channels[ch])
	}
}

// ProcessChannels calls fn for each channel
func (b *Buffer) ProcessChannels(fn func(ch int, samples []float32)) {
	for ch := range b.Channels {
		fn(ch, b.Channels[ch])
	}
}

// ProcessSamples calls fn once per sample index with a frame holding that
// sample from every channel. frame is reused and written back after fn
// returns; it must have room for NumChannels samples.
func (b *Buffer) ProcessSamples(frame []float32, fn func(sample int, frame []float32)) {
	n := b.NumSamples()
	channels := len(b.Channels)
	if len(frame) < channels {
		channels = len(frame)
	}
	for i := 0; i < n; i++ {
		for ch := 0; ch < channels; ch++ {
			frame[ch] = b.Channels[ch][i]
		}
		fn(i, frame[:channels])
		for ch := 0; ch < channels; ch++ {
			b.Channels[ch][i] = frame[ch]
		}
	}
}

// AuxBuffers holds the auxiliary (sidechain and extra output) buses
type AuxBuffers struct {
	Inputs  []Buffer
	Outputs []Buffer
}

// Sidechain returns the first auxiliary input or nil
func (a *AuxBuffers) Sidechain() *Buffer {
	if a == nil || len(a.Inputs) == 0 {
		return nil
	}
	return &a.Inputs[0]
}
