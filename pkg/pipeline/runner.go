package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/gzrlab/gzrsteg/pkg/imageio"
	"github.com/gzrlab/gzrsteg/pkg/observability"
	"github.com/gzrlab/gzrsteg/pkg/steg"
	"github.com/gzrlab/gzrsteg/pkg/tribonacci"
)

// Runner executes encode and decode pipelines. It is stateless apart from
// the logger: each run owns its own grids and bitstrings, so multiple
// goroutines can share one Runner.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger falls back to log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Encode runs the complete load → encode → embed → save pipeline.
func (r *Runner) Encode(ctx context.Context, opts EncodeOptions) (*EncodeResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	loadStart := time.Now()
	original, err := imageio.Load(opts.ImagePath)
	observability.Image().OnLoad(ctx, opts.ImagePath, gridW(original), gridH(original), err)
	if err != nil {
		return nil, err
	}
	loadTime := time.Since(loadStart)

	r.Logger.Info("loaded carrier",
		"path", opts.ImagePath,
		"size", imageSize(original),
		"duration", loadTime.Round(time.Millisecond))

	result, err := r.EncodeGrid(ctx, original, opts.Message)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = loadTime

	if opts.OutputPath != "" {
		saveStart := time.Now()
		err := imageio.Save(opts.OutputPath, result.Stego)
		observability.Image().OnSave(ctx, opts.OutputPath, result.Stego.W, result.Stego.H, err)
		if err != nil {
			return nil, err
		}
		result.Stats.SaveTime = time.Since(saveStart)
		result.StegoPath = opts.OutputPath

		r.Logger.Info("saved stego image",
			"path", opts.OutputPath,
			"duration", result.Stats.SaveTime.Round(time.Millisecond))
	}

	return result, nil
}

// EncodeGrid runs the in-memory stages against an already loaded grid.
// The grid itself is never mutated; the stego copy is on the result.
func (r *Runner) EncodeGrid(ctx context.Context, original *steg.Grid, message string) (*EncodeResult, error) {
	ch, err := steg.NewChannel(original)
	if err != nil {
		return nil, err
	}

	// Stage: GZR encode
	encodeStart := time.Now()
	observability.Pipeline().OnEncodeStart(ctx, len([]rune(message)))
	payload, err := tribonacci.EncodeText(message)
	encodeTime := time.Since(encodeStart)
	observability.Pipeline().OnEncodeComplete(ctx, len(payload), encodeTime, err)
	if err != nil {
		return nil, err
	}

	valid, count111 := tribonacci.VerifyNo111(payload)
	density := tribonacci.BitDensity(payload)

	r.Logger.Info("encoded message",
		"chars", len([]rune(message)),
		"payload_bits", len(payload),
		"density", density,
		"pattern_111", count111,
		"duration", encodeTime.Round(time.Millisecond))

	// Capacity gate: fails before any pixel is touched.
	if err := ch.CheckCapacity(len(payload)); err != nil {
		return nil, err
	}

	// Stage: frame + embed
	frame := steg.Frame(payload)
	embedStart := time.Now()
	observability.Pipeline().OnEmbedStart(ctx, len(frame), ch.CapacityBits())
	stego := ch.Embed(frame)
	embedTime := time.Since(embedStart)
	observability.Pipeline().OnEmbedComplete(ctx, len(frame), embedTime, nil)

	r.Logger.Info("embedded frame",
		"frame_bits", len(frame),
		"capacity_bits", ch.CapacityBits(),
		"duration", embedTime.Round(time.Millisecond))

	return &EncodeResult{
		ID:       uuid.NewString(),
		Original: original,
		Stego:    stego,
		Stats: EncodeStats{
			MessageChars:  len([]rune(message)),
			PayloadBits:   len(payload),
			FrameBits:     len(frame),
			BitDensity:    density,
			Pattern111:    count111,
			ValidGZR:      valid,
			RequiredBytes: len(payload)/8 + 1,
			CapacityBytes: ch.CapacityBytes(),
			EncodeTime:    encodeTime,
			EmbedTime:     embedTime,
		},
	}, nil
}

// Decode runs the complete load → extract → decode pipeline.
func (r *Runner) Decode(ctx context.Context, opts DecodeOptions) (*DecodeResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	loadStart := time.Now()
	stego, err := imageio.Load(opts.ImagePath)
	observability.Image().OnLoad(ctx, opts.ImagePath, gridW(stego), gridH(stego), err)
	if err != nil {
		return nil, err
	}
	loadTime := time.Since(loadStart)

	r.Logger.Info("loaded stego image",
		"path", opts.ImagePath,
		"size", imageSize(stego),
		"duration", loadTime.Round(time.Millisecond))

	result, err := r.DecodeGrid(ctx, stego)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = loadTime
	return result, nil
}

// DecodeGrid runs the extraction stages against an already loaded grid.
func (r *Runner) DecodeGrid(ctx context.Context, stego *steg.Grid) (*DecodeResult, error) {
	ch, err := steg.NewChannel(stego)
	if err != nil {
		return nil, err
	}

	// Stage: extract
	extractStart := time.Now()
	observability.Pipeline().OnExtractStart(ctx, ch.CapacityBits())
	length, err := ch.ExtractHeader()
	if err != nil {
		observability.Pipeline().OnExtractComplete(ctx, 0, time.Since(extractStart), err)
		return nil, err
	}
	payload, err := ch.ExtractPayload(length)
	extractTime := time.Since(extractStart)
	observability.Pipeline().OnExtractComplete(ctx, len(payload), extractTime, err)
	if err != nil {
		return nil, err
	}

	r.Logger.Info("extracted payload",
		"payload_bits", length,
		"duration", extractTime.Round(time.Millisecond))

	// Stage: GZR decode
	decodeStart := time.Now()
	message := tribonacci.DecodeText(payload)
	decodeTime := time.Since(decodeStart)

	valid, count111 := tribonacci.VerifyNo111(payload)

	r.Logger.Info("decoded message",
		"chars", len([]rune(message)),
		"pattern_111", count111,
		"duration", decodeTime.Round(time.Millisecond))

	return &DecodeResult{
		ID:      uuid.NewString(),
		Message: message,
		Stats: DecodeStats{
			PayloadBits:  len(payload),
			MessageChars: len([]rune(message)),
			BitDensity:   tribonacci.BitDensity(payload),
			Pattern111:   count111,
			ValidGZR:     valid,
			ExtractTime:  extractTime,
			DecodeTime:   decodeTime,
		},
	}, nil
}

func gridW(g *steg.Grid) int {
	if g == nil {
		return 0
	}
	return g.W
}

func gridH(g *steg.Grid) int {
	if g == nil {
		return 0
	}
	return g.H
}

func imageSize(g *steg.Grid) string {
	if g == nil {
		return "0x0"
	}
	return fmt.Sprintf("%dx%d", g.W, g.H)
}
