package cli

import "testing"

func TestDemoCarrier(t *testing.T) {
	grid := demoCarrier(64, 32)

	if grid.W != 64 || grid.H != 32 {
		t.Fatalf("dimensions = %dx%d, want 64x32", grid.W, grid.H)
	}

	// The sinusoidal texture must actually vary; a flat carrier would make
	// the demo's quality analysis meaningless.
	first := grid.Pix[0]
	varied := false
	for _, p := range grid.Pix {
		if p != first {
			varied = true
			break
		}
	}
	if !varied {
		t.Error("demo carrier is flat")
	}

	// Deterministic: the same inputs always produce the same carrier.
	again := demoCarrier(64, 32)
	for i := range grid.Pix {
		if grid.Pix[i] != again.Pix[i] {
			t.Fatal("demo carrier is not deterministic")
		}
	}
}
