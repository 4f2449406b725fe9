package core

import "gocv.io/x/gocv"

// Composite applies every mapping to a copy of original and returns the
// result; the caller owns the returned Mat and must Close it.
//
// Each mapping's mask is computed against original, never against the
// accumulating output. Mappings are therefore independent: order only
// decides which replacement a pixel matched by several ranges ends up
// with (the last one), and a replacement color that happens to fall
// inside another mapping's range is never re-matched.
func Composite(original gocv.Mat, mappings []Mapping) gocv.Mat {
	output := original.Clone()
	if len(mappings) == 0 {
		return output
	}

	mask := gocv.NewMat()
	defer mask.Close()

	for _, m := range mappings {
		gocv.InRangeWithScalar(original, m.Lower.Scalar(), m.Upper.Scalar(), &mask)

		fill := gocv.NewMatWithSizeFromScalar(m.Replacement.Scalar(),
			original.Rows(), original.Cols(), gocv.MatTypeCV8UC3)
		fill.CopyToWithMask(&output, mask)
		fill.Close()
	}

	return output
}
