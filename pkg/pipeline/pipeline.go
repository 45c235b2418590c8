// Package pipeline provides the core encode/decode pipeline for gzrsteg.
//
// This package implements the complete load → encode → frame → embed → save
// pipeline (and its extraction mirror) that can be used by the CLI and the
// HTTP API. By centralizing this logic, we ensure consistent behavior
// across all entry points and avoid code duplication.
//
// # Architecture
//
// Encoding consists of four stages:
//
//  1. Load: read the carrier image and reduce it to a grayscale grid
//  2. Encode: convert the message to a GZR payload bitstream
//  3. Embed: frame the payload and write it into the grid's LSB plane
//  4. Save: persist the stego grid as PNG
//
// Decoding mirrors it: load → extract header → extract payload → decode.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Encode(ctx, pipeline.EncodeOptions{
//	    ImagePath:  "carrier.png",
//	    OutputPath: "stego.png",
//	    Message:    "Hello GZR!",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Stats.PayloadBits)
package pipeline

import (
	"time"

	"github.com/gzrlab/gzrsteg/pkg/errors"
	"github.com/gzrlab/gzrsteg/pkg/steg"
)

// DefaultOutputSuffix is appended to a carrier's base name when no
// explicit output path is given ("carrier.png" → "carrier_stego.png").
const DefaultOutputSuffix = "_stego"

// EncodeOptions configures one encode run.
type EncodeOptions struct {
	// ImagePath is the carrier image to load.
	ImagePath string `json:"image_path"`

	// OutputPath is where the stego PNG is written. Empty skips
	// persistence; the caller gets the grid on the result.
	OutputPath string `json:"output_path,omitempty"`

	// Message is the secret text to hide. Code points are limited to
	// [0, 255].
	Message string `json:"message"`
}

// Validate checks options before the pipeline starts.
func (o *EncodeOptions) Validate() error {
	if o.ImagePath == "" {
		return errors.New(errors.ErrCodeInvalidInput, "carrier image path is required")
	}
	if o.Message == "" {
		return errors.New(errors.ErrCodeInvalidInput, "message is empty")
	}
	return nil
}

// DecodeOptions configures one decode run.
type DecodeOptions struct {
	// ImagePath is the stego image to read.
	ImagePath string `json:"image_path"`
}

// Validate checks options before the pipeline starts.
func (o *DecodeOptions) Validate() error {
	if o.ImagePath == "" {
		return errors.New(errors.ErrCodeInvalidInput, "stego image path is required")
	}
	return nil
}

// EncodeStats carries the measurements of one encode run.
type EncodeStats struct {
	MessageChars  int     `json:"message_chars"`
	PayloadBits   int     `json:"payload_bits"`
	FrameBits     int     `json:"frame_bits"`
	BitDensity    float64 `json:"bit_density"`
	Pattern111    int     `json:"pattern_111_count"`
	ValidGZR      bool    `json:"valid_gzr"`
	RequiredBytes int     `json:"required_bytes"`
	CapacityBytes int     `json:"capacity_bytes"`

	LoadTime   time.Duration `json:"load_time"`
	EncodeTime time.Duration `json:"encode_time"`
	EmbedTime  time.Duration `json:"embed_time"`
	SaveTime   time.Duration `json:"save_time"`
}

// DecodeStats carries the measurements of one decode run.
type DecodeStats struct {
	PayloadBits  int     `json:"payload_bits"`
	MessageChars int     `json:"message_chars"`
	BitDensity   float64 `json:"bit_density"`
	Pattern111   int     `json:"pattern_111_count"`
	ValidGZR     bool    `json:"valid_gzr"`

	LoadTime    time.Duration `json:"load_time"`
	ExtractTime time.Duration `json:"extract_time"`
	DecodeTime  time.Duration `json:"decode_time"`
}

// EncodeResult is the outcome of one encode run.
type EncodeResult struct {
	// ID identifies the run in logs and API responses.
	ID string `json:"id"`

	// StegoPath is where the stego image was written, if anywhere.
	StegoPath string `json:"stego_path,omitempty"`

	Stats EncodeStats `json:"stats"`

	// Original and Stego grids are returned for in-process callers
	// (quality analysis, the HTTP API); they are not serialized.
	Original *steg.Grid `json:"-"`
	Stego    *steg.Grid `json:"-"`
}

// DecodeResult is the outcome of one decode run.
type DecodeResult struct {
	ID      string      `json:"id"`
	Message string      `json:"message"`
	Stats   DecodeStats `json:"stats"`
}
