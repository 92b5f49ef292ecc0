package spectral

import (
	"errors"
	"math"
	"testing"

	"github.com/landsight/landsight-index-poc/internal/raster"
)

func newBundle(bands map[string][][]float64) *raster.BandBundle {
	bundle := &raster.BandBundle{Bands: map[string]*raster.Grid{}}
	for name, data := range bands {
		bundle.Bands[name] = &raster.Grid{Data: data}
	}
	return bundle
}

func TestNDVIValues(t *testing.T) {
	bundle := newBundle(map[string][][]float64{
		"nir": {{3000, 1000}},
		"red": {{1000, 1000}},
	})

	ndvi, err := NDVI(bundle)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(ndvi.Data[0][0]-0.5) > 1e-12 {
		t.Errorf("expected NDVI 0.5, got %v", ndvi.Data[0][0])
	}
	if ndvi.Data[0][1] != 0 {
		t.Errorf("expected NDVI 0 for equal bands, got %v", ndvi.Data[0][1])
	}
}

func TestZeroDenominatorYieldsNonFinite(t *testing.T) {
	// A cell where both bands are zero must come out non-finite, not error.
	bundle := newBundle(map[string][][]float64{
		"nir": {{0, 5}},
		"red": {{0, -5}},
	})

	ndvi, err := NDVI(bundle)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !math.IsNaN(ndvi.Data[0][0]) {
		t.Errorf("expected NaN for 0/0, got %v", ndvi.Data[0][0])
	}
	if !math.IsInf(ndvi.Data[0][1], 0) {
		t.Errorf("expected Inf for nonzero/0, got %v", ndvi.Data[0][1])
	}
}

func TestMissingBandFailsBeforeComputing(t *testing.T) {
	bundle := newBundle(map[string][][]float64{
		"red": {{1}},
	})

	for _, tc := range []struct {
		name    string
		formula Formula
		band    string
	}{
		{"ndvi", NDVI, "nir"},
		{"ndbi", NDBI, "swir22"},
		{"ndwi", NDWI, "green"},
		{"nbai", NBAI, "swir22"},
		{"nbr", NBR, "nir"},
		{"ibi", IBI, "nir"},
	} {
		_, err := tc.formula(bundle)
		if err == nil {
			t.Errorf("%s: expected a missing band error", tc.name)
			continue
		}
		var missing raster.MissingBandError
		if !errors.As(err, &missing) {
			t.Errorf("%s: expected MissingBandError, got %T: %v", tc.name, err, err)
		}
	}
}

func TestDNBRIsLiteralDifferenceOfNBR(t *testing.T) {
	pre := newBundle(map[string][][]float64{
		"nir":    {{3000, 2400}},
		"swir22": {{1000, 800}},
	})
	post := newBundle(map[string][][]float64{
		"nir":    {{1200, 900}},
		"swir22": {{2000, 1800}},
	})

	dnbr, err := DNBR(pre, post)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	nbrPre, _ := NBR(pre)
	nbrPost, _ := NBR(post)
	for x := 0; x < 2; x++ {
		expected := nbrPre.Data[0][x] - nbrPost.Data[0][x]
		if dnbr.Data[0][x] != expected {
			t.Errorf("cell (0,%d): expected %v, got %v", x, expected, dnbr.Data[0][x])
		}
	}
}

// IBI's internal built-up term reads swir16, while the standalone NDBI formula
// reads swir22. This pins the asymmetry so it cannot be unified by accident.
func TestIBIUsesSwir16ForBuiltUpTerm(t *testing.T) {
	bundle := newBundle(map[string][][]float64{
		"nir":    {{2000}},
		"red":    {{1000}},
		"green":  {{1500}},
		"swir16": {{3000}},
		"swir22": {{500}},
	})

	ibi, err := IBI(bundle)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ndvi := (2000.0 - 1000.0) / (2000.0 + 1000.0)
	ndwi := (1500.0 - 500.0) / (1500.0 + 500.0)
	ndbi16 := (3000.0 - 2000.0) / (3000.0 + 2000.0)
	expected := (ndbi16 - (ndvi + ndwi)) / (ndbi16 + (ndvi + ndwi))

	if math.Abs(ibi.Data[0][0]-expected) > 1e-12 {
		t.Errorf("expected IBI %v (swir16 built-up term), got %v", expected, ibi.Data[0][0])
	}

	// Sanity check the pin actually discriminates: the swir22 variant differs.
	ndbi22 := (500.0 - 2000.0) / (500.0 + 2000.0)
	unified := (ndbi22 - (ndvi + ndwi)) / (ndbi22 + (ndvi + ndwi))
	if math.Abs(expected-unified) < 1e-6 {
		t.Fatal("fixture does not distinguish swir16 from swir22")
	}
}

func TestRequiredBandsCoverFormulaInputs(t *testing.T) {
	for name := range Formulas {
		if len(RequiredBands[name]) == 0 {
			t.Errorf("index %s has no required band list", name)
		}
	}
}
