package voxel

import "testing"

func TestEmptyVoxel(t *testing.T) {
	v := EmptyVoxel()
	if !v.IsEmpty() {
		t.Fatalf("EmptyVoxel() should report IsEmpty()")
	}
	if v.SignedDistance != -127 {
		t.Errorf("expected saturated negative distance, got %d", v.SignedDistance)
	}
}

func TestWithTypeAndSDF(t *testing.T) {
	v := EmptyVoxel().WithType(3).WithSDF(40)
	if v.IsEmpty() {
		t.Fatalf("voxel with non-zero type should not be empty")
	}
	if v.Type != 3 || v.SignedDistance != 40 {
		t.Errorf("unexpected voxel %+v", v)
	}
}

func TestWithSDFClampsContradictorySign(t *testing.T) {
	DebugAssertions = false
	clamped := EmptyVoxel().WithSDF(40).SignedDistance
	DebugAssertions = true
	if clamped != 0 {
		t.Fatalf("expected WithSDF to clamp a contradictory sign to 0 with DebugAssertions off, got %d", clamped)
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected WithSDF to panic on a sign/type contradiction")
		}
	}()
	EmptyVoxel().WithSDF(40)
}

func TestQuantizeDequantizeRoundTrip(t *testing.T) {
	extent := float32(0.05)
	for _, d := range []float32{0, 0.01, -0.02, 0.1, -0.1} {
		q := QuantizeSDF(d, extent)
		back := DequantizeSDF(q, extent)
		diff := back - d
		if diff < 0 {
			diff = -diff
		}
		if diff > extent/127.0*2 {
			t.Errorf("quantize round trip too lossy: %v -> %d -> %v", d, q, back)
		}
	}
}

func TestQuantizeSDFClamps(t *testing.T) {
	if QuantizeSDF(1000, 0.1) != 127 {
		t.Errorf("expected clamp to +127")
	}
	if QuantizeSDF(-1000, 0.1) != -127 {
		t.Errorf("expected clamp to -127")
	}
}
