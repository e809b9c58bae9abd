package qimdwt

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

// testPixels builds a smooth synthetic grayscale plane, kept away from
// the 0/255 rails so reconstruction after embedding cannot clip.
func testPixels(width, height int) [][]float64 {
	pixels := make([][]float64, height)
	for y := range height {
		pixels[y] = make([]float64, width)
		for x := range width {
			pixels[y][x] = 128 +
				50*math.Sin(float64(x)/9.0) +
				40*math.Cos(float64(y)/7.0)
		}
	}
	return pixels
}

// TestDecomposeValidation verifies configuration errors for unusable
// inputs.
func TestDecomposeValidation(t *testing.T) {
	tests := []struct {
		name   string
		pixels [][]float64
		levels int
	}{
		{name: "empty", levels: 2},
		{name: "empty rows", pixels: [][]float64{{}}, levels: 2},
		{name: "ragged", pixels: [][]float64{{1, 2}, {1}}, levels: 1},
		{name: "zero levels", pixels: testPixels(32, 32), levels: 0},
		{name: "too many levels", pixels: testPixels(8, 8), levels: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decompose(tt.pixels, tt.levels); !errors.Is(err, ErrConfiguration) {
				t.Errorf("Decompose error = %v, want ErrConfiguration", err)
			}
		})
	}
}

// TestDecomposeBandShapes verifies the detail-band names, order and
// shapes for even and odd image dimensions.
func TestDecomposeBandShapes(t *testing.T) {
	tests := []struct {
		width, height, levels int
	}{
		{256, 256, 2},
		{128, 64, 2},
		{17, 15, 2},
		{33, 31, 3},
	}

	for _, tt := range tests {
		set, err := Decompose(testPixels(tt.width, tt.height), tt.levels)
		if err != nil {
			t.Fatalf("%dx%d: %v", tt.width, tt.height, err)
		}
		bands := set.DetailBands()
		if len(bands) != 3*tt.levels {
			t.Fatalf("%dx%d: %d bands, want %d", tt.width, tt.height, len(bands), 3*tt.levels)
		}

		i := 0
		for level := 1; level <= tt.levels; level++ {
			lw := levelDim(tt.width, level-1)
			lh := levelDim(tt.height, level-1)
			wantRowsHigh := lh - (lh+1)/2
			wantColsHigh := lw - (lw+1)/2
			wantRowsLow := (lh + 1) / 2
			wantColsLow := (lw + 1) / 2

			checks := []struct {
				name       string
				rows, cols int
			}{
				{"HH", wantRowsHigh, wantColsHigh},
				{"HL", wantRowsLow, wantColsHigh},
				{"LH", wantRowsHigh, wantColsLow},
			}
			for _, c := range checks {
				b := bands[i]
				i++
				if wantName := c.name + string(rune('0'+level)); b.Name != wantName {
					t.Errorf("band %d name = %s, want %s", i-1, b.Name, wantName)
				}
				if b.Rows() != c.rows || b.Cols() != c.cols {
					t.Errorf("%s: shape %dx%d, want %dx%d", b.Name, b.Rows(), b.Cols(), c.rows, c.cols)
				}
			}
		}
	}
}

// TestDecomposeShapeDeterminism verifies band shapes depend only on
// image geometry, never on sample values.
func TestDecomposeShapeDeterminism(t *testing.T) {
	a, err := Decompose(testPixels(96, 80), 2)
	if err != nil {
		t.Fatal(err)
	}
	flat := make([][]float64, 80)
	for y := range flat {
		flat[y] = make([]float64, 96)
	}
	b, err := Decompose(flat, 2)
	if err != nil {
		t.Fatal(err)
	}

	ba, bb := a.DetailBands(), b.DetailBands()
	for i := range ba {
		if ba[i].Name != bb[i].Name || ba[i].Rows() != bb[i].Rows() || ba[i].Cols() != bb[i].Cols() {
			t.Fatalf("band %d differs: %s %dx%d vs %s %dx%d", i,
				ba[i].Name, ba[i].Rows(), ba[i].Cols(), bb[i].Name, bb[i].Rows(), bb[i].Cols())
		}
	}
}

// TestReconstructRoundTrip verifies forward+inverse reconstruction is
// accurate to floating tolerance when no coefficient was modified.
func TestReconstructRoundTrip(t *testing.T) {
	sizes := []struct {
		width, height, levels int
	}{
		{32, 32, 1},
		{64, 64, 2},
		{65, 63, 2},
		{128, 96, 3},
	}

	for _, s := range sizes {
		pixels := testPixels(s.width, s.height)
		set, err := Decompose(pixels, s.levels)
		if err != nil {
			t.Fatal(err)
		}
		out := set.Reconstruct()

		var maxErr float64
		for y := range pixels {
			for x := range pixels[y] {
				if d := math.Abs(out[y][x] - pixels[y][x]); d > maxErr {
					maxErr = d
				}
			}
		}
		if maxErr > 1e-6 {
			t.Errorf("%dx%d levels=%d: max round-trip error %g", s.width, s.height, s.levels, maxErr)
		}
	}
}

// TestReconstructLeavesBandSet verifies reconstruction does not
// consume the decomposition: bands remain readable afterwards.
func TestReconstructLeavesBandSet(t *testing.T) {
	set, err := Decompose(testPixels(64, 64), 2)
	if err != nil {
		t.Fatal(err)
	}
	bands := set.DetailBands()
	before := cloneBand(bands[0])

	set.Reconstruct()

	for r := range before.Data {
		for c := range before.Data[r] {
			if bands[0].Data[r][c] != before.Data[r][c] {
				t.Fatal("Reconstruct modified band coefficients")
			}
		}
	}
}

// TestEmbedThroughTransform runs the full coefficient path: decompose,
// embed, reconstruct, re-decompose, extract. Staying in float64 keeps
// the channel noise at floating tolerance, so recovery must be exact.
func TestEmbedThroughTransform(t *testing.T) {
	pixels := testPixels(128, 128)
	payload := []byte("through the wavelet domain and back")

	set, err := Decompose(pixels, DefaultLevels)
	if err != nil {
		t.Fatal(err)
	}
	sel, err := NewSelector(set.DetailBands(), DefaultRowSkip, DefaultColSkip)
	if err != nil {
		t.Fatal(err)
	}
	if err := EmbedPayload(sel, payload); err != nil {
		t.Fatal(err)
	}
	stego := set.Reconstruct()

	if p := PSNR(pixels, stego); p < 40 {
		t.Errorf("embedding distortion too high: PSNR %.2f dB", p)
	}

	set2, err := Decompose(stego, DefaultLevels)
	if err != nil {
		t.Fatal(err)
	}
	sel2, err := NewSelector(set2.DetailBands(), DefaultRowSkip, DefaultColSkip)
	if err != nil {
		t.Fatal(err)
	}
	got, err := ExtractPayload(sel2)
	if err != nil {
		t.Fatalf("ExtractPayload: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("extracted %q, want %q", got, payload)
	}
}

// TestEmbedExtractImage runs the image-level convenience API through
// 8-bit pixel quantization. The cover stays mid-range so clipping
// cannot add to the rounding noise.
func TestEmbedExtractImage(t *testing.T) {
	cover := grayImage(testPixels(128, 128))
	payload := []byte("Hello, wavelet!")

	stego, err := Embed(cover, payload)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	got, err := Extract(stego)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("extracted %q, want %q", got, payload)
	}
}

// TestPSNR verifies the metric against hand-computed values.
func TestPSNR(t *testing.T) {
	a := [][]float64{{0, 0}, {0, 0}}
	if p := PSNR(a, a); !math.IsInf(p, 1) {
		t.Errorf("PSNR of identical grids = %v, want +Inf", p)
	}

	b := [][]float64{{255, 255}, {255, 255}}
	if p := PSNR(a, b); math.Abs(p) > 1e-9 {
		// MSE = 255^2, PSNR = 10*log10(1) = 0
		t.Errorf("PSNR of full-swing difference = %v, want 0", p)
	}
}
