package debug

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

// AnalysisResult contains the results of audio buffer analysis.
type AnalysisResult struct {
	Peak           float32
	RMS            float32
	DC             float32
	ClippedSamples int
	NaNCount       int
	Silent         bool
}

const (
	clippingThreshold = 0.99
	dcThreshold       = 0.01
	silenceThreshold  = 0.0001
)

// AnalyzeBuffer computes peak, RMS, DC offset and counts of clipped and
// non-finite samples.
func AnalyzeBuffer(buffer []float32) AnalysisResult {
	result := AnalysisResult{}
	if len(buffer) == 0 {
		return result
	}

	var sum, sumSquares float64
	finite := 0
	for _, sample := range buffer {
		s := float64(sample)
		if math.IsNaN(s) || math.IsInf(s, 0) {
			result.NaNCount++
			continue
		}
		finite++

		abs := float32(math.Abs(s))
		if abs > result.Peak {
			result.Peak = abs
		}
		if abs >= clippingThreshold {
			result.ClippedSamples++
		}
		sum += s
		sumSquares += s * s
	}

	if finite > 0 {
		result.RMS = float32(math.Sqrt(sumSquares / float64(finite)))
		result.DC = float32(sum / float64(finite))
	}
	result.Silent = result.RMS < silenceThreshold
	return result
}

// CheckBuffer performs basic sanity checks on an audio buffer.
func CheckBuffer(buffer []float32, name string) []string {
	var issues []string
	result := AnalyzeBuffer(buffer)

	if result.NaNCount > 0 {
		issues = append(issues, fmt.Sprintf("%s: contains %d non-finite values", name, result.NaNCount))
	}
	if result.ClippedSamples > 0 {
		issues = append(issues, fmt.Sprintf("%s: clipping detected (%d samples)", name, result.ClippedSamples))
	}
	if math.Abs(float64(result.DC)) > dcThreshold {
		issues = append(issues, fmt.Sprintf("%s: DC offset detected (%.3f)", name, result.DC))
	}
	return issues
}

// LogBufferStats logs statistics about an audio buffer at debug level and
// any sanity check failures as warnings.
func LogBufferStats(buffer []float32, name string) {
	log := Named("audio")
	result := AnalyzeBuffer(buffer)
	log.Debug("buffer stats",
		zap.String("buffer", name),
		zap.Int("samples", len(buffer)),
		zap.Float32("peak", result.Peak),
		zap.Float32("rms", result.RMS),
		zap.Float32("dc", result.DC),
		zap.Bool("silent", result.Silent))

	for _, issue := range CheckBuffer(buffer, name) {
		log.Warn(issue)
	}
}
