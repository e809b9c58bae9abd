package qimdwt

import "fmt"

// Protocol constants for coefficient selection. The first rows and
// columns of each detail band hold boundary-affected coefficients that
// do not survive the transform round trip reliably, so both sides of
// the protocol skip them. Embedder and extractor must use identical
// margins; these are the fixed values, not tunables.
const (
	DefaultRowSkip = 16
	DefaultColSkip = 16
)

// Selector enumerates embeddable coefficient positions over an ordered
// set of bands. The walk is deterministic: bands in the order given,
// and within each band row-major order restricted to rows >= rowSkip
// and cols >= colSkip. Two selectors over equal band shapes and equal
// margins produce identical position sequences regardless of the
// coefficient values, which is the property the whole embed/extract
// pairing rests on.
type Selector struct {
	bands   []Band
	rowSkip int
	colSkip int
}

// NewSelector validates the band set and margins and returns a
// selector over them. Each band must be strictly larger than the
// margins in both axes.
func NewSelector(bands []Band, rowSkip, colSkip int) (*Selector, error) {
	if len(bands) == 0 {
		return nil, fmt.Errorf("%w: no bands", ErrConfiguration)
	}
	if rowSkip < 0 || colSkip < 0 {
		return nil, fmt.Errorf("%w: negative margin (%d, %d)", ErrConfiguration, rowSkip, colSkip)
	}
	for _, b := range bands {
		if rowSkip >= b.Rows() || colSkip >= b.Cols() {
			return nil, fmt.Errorf("%w: margins (%d, %d) exceed band %s shape %dx%d",
				ErrConfiguration, rowSkip, colSkip, b.Name, b.Rows(), b.Cols())
		}
		for _, row := range b.Data {
			if len(row) != b.Cols() {
				return nil, fmt.Errorf("%w: band %s is ragged", ErrConfiguration, b.Name)
			}
		}
	}
	return &Selector{bands: bands, rowSkip: rowSkip, colSkip: colSkip}, nil
}

// CapacityBits returns the number of addressable coefficients, i.e. the
// maximum number of bits the band set can carry. Depends only on band
// shapes and margins.
func (s *Selector) CapacityBits() int {
	total := 0
	for _, b := range s.bands {
		total += (b.Rows() - s.rowSkip) * (b.Cols() - s.colSkip)
	}
	return total
}

// CapacityBytes returns the maximum whole-byte capacity, including the
// bytes consumed by the length header.
func (s *Selector) CapacityBytes() int {
	return s.CapacityBits() / 8
}

// iter starts a fresh walk over the selector's positions.
func (s *Selector) iter() *positionIter {
	it := &positionIter{sel: s}
	it.Reset()
	return it
}

// positionIter is a restartable cursor over a selector's position
// sequence. Next yields the band and in-band coordinates directly so
// the engines can read and write coefficients without a name lookup.
type positionIter struct {
	sel  *Selector
	band int
	row  int
	col  int
}

// Reset rewinds the iterator to the first position.
func (it *positionIter) Reset() {
	it.band = 0
	it.row = it.sel.rowSkip
	it.col = it.sel.colSkip
}

// Next returns the band and coordinates of the next position, or
// ok=false when the sequence is exhausted.
func (it *positionIter) Next() (band *Band, row, col int, ok bool) {
	if it.band >= len(it.sel.bands) {
		return nil, 0, 0, false
	}
	b := &it.sel.bands[it.band]
	band, row, col, ok = b, it.row, it.col, true

	it.col++
	if it.col >= b.Cols() {
		it.col = it.sel.colSkip
		it.row++
		if it.row >= b.Rows() {
			it.row = it.sel.rowSkip
			it.band++
		}
	}
	return band, row, col, ok
}

// position converts the iterator's current band/coordinate tuple into
// an addressable Position value.
func position(band *Band, row, col int) Position {
	return Position{Band: band.Name, Row: row, Col: col}
}
