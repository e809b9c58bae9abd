package qimdwt

// Band is one named wavelet sub-band: a 2D grid of real-valued
// coefficients at a single decomposition level. Data is indexed as
// Data[row][col]. Bands produced by BandSet.DetailBands are views into
// the decomposition's backing array, so writing a coefficient through a
// Band is visible to Reconstruct.
type Band struct {
	Name string
	Data [][]float64
}

// Rows returns the number of coefficient rows in the band.
func (b Band) Rows() int {
	return len(b.Data)
}

// Cols returns the number of coefficient columns in the band.
// A band with zero rows has zero columns.
func (b Band) Cols() int {
	if len(b.Data) == 0 {
		return 0
	}
	return len(b.Data[0])
}

// Position addresses a single coefficient: a band name plus row and
// column within that band. Positions are regenerated from band shapes
// on every pass rather than stored, which is what keeps the embedding
// and extraction walks aligned.
type Position struct {
	Band string
	Row  int
	Col  int
}
