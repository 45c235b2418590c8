package cli

import (
	"testing"
)

func TestStegoOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		carrier string
		suffix  string
		want    string
	}{
		{"png carrier", "photo.png", "_stego", "photo_stego.png"},
		{"nested path", "images/cat.png", "_stego", "images/cat_stego.png"},
		{"jpeg forced to png", "photo.jpg", "_stego", "photo_stego.png"},
		{"no extension", "photo", "_stego", "photo_stego.png"},
		{"custom suffix", "photo.png", "-hidden", "photo-hidden.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stegoOutputPath(tt.carrier, tt.suffix); got != tt.want {
				t.Errorf("stegoOutputPath(%q, %q) = %q, want %q", tt.carrier, tt.suffix, got, tt.want)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.OutputSuffix != "_stego" {
		t.Errorf("OutputSuffix = %q, want %q", cfg.OutputSuffix, "_stego")
	}
	if cfg.PlotDir != "plots" {
		t.Errorf("PlotDir = %q, want %q", cfg.PlotDir, "plots")
	}
	if cfg.ServerAddr != ":8080" {
		t.Errorf("ServerAddr = %q, want %q", cfg.ServerAddr, ":8080")
	}
}
