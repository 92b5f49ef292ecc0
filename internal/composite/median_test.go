package composite

import (
	"errors"
	"math"
	"testing"

	"github.com/landsight/landsight-index-poc/internal/raster"
)

func TestMedianIgnoresMissingValues(t *testing.T) {
	nan := math.NaN()
	sceneA := &raster.Grid{Data: [][]float64{{1, 2}, {3, nan}}}
	sceneB := &raster.Grid{Data: [][]float64{{5, 6}, {nan, nan}}}

	result, err := Median([]*raster.Grid{sceneA, sceneB})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Data[0][0] != 3 || result.Data[0][1] != 4 {
		t.Errorf("expected row 0 to be [3 4], got %v", result.Data[0])
	}
	if result.Data[1][0] != 3 {
		t.Errorf("expected cell (1,0) median 3 from its single finite observation, got %v", result.Data[1][0])
	}
	if !math.IsNaN(result.Data[1][1]) {
		t.Errorf("expected cell (1,1) to stay missing when every observation is missing, got %v", result.Data[1][1])
	}
}

func TestMedianExcludesInfiniteValues(t *testing.T) {
	inf := math.Inf(1)
	scenes := []*raster.Grid{
		{Data: [][]float64{{inf}}},
		{Data: [][]float64{{2}}},
		{Data: [][]float64{{4}}},
	}

	result, err := Median(scenes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Data[0][0] != 3 {
		t.Errorf("expected median 3 with the Inf observation excluded, got %v", result.Data[0][0])
	}
}

func TestMedianOddCount(t *testing.T) {
	scenes := []*raster.Grid{
		{Data: [][]float64{{9}}},
		{Data: [][]float64{{1}}},
		{Data: [][]float64{{5}}},
	}

	result, err := Median(scenes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Data[0][0] != 5 {
		t.Errorf("expected median 5, got %v", result.Data[0][0])
	}
}

func TestMedianEmptyInput(t *testing.T) {
	_, err := Median(nil)
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}

func TestMedianShapeMismatch(t *testing.T) {
	scenes := []*raster.Grid{
		raster.NewGrid(2, 2, [6]float64{}),
		raster.NewGrid(2, 3, [6]float64{}),
	}

	_, err := Median(scenes)
	if err == nil {
		t.Fatal("expected an alignment error")
	}
	var alignment AlignmentError
	if !errors.As(err, &alignment) {
		t.Fatalf("expected AlignmentError, got %T: %v", err, err)
	}
	if alignment.Index != 1 {
		t.Errorf("expected the mismatch to be reported at index 1, got %d", alignment.Index)
	}
}

func TestMedianInheritsTransform(t *testing.T) {
	transform := [6]float64{100, 10, 0, 200, 0, -10}
	scenes := []*raster.Grid{
		raster.NewGrid(1, 1, transform),
		raster.NewGrid(1, 1, [6]float64{}),
	}

	result, err := Median(scenes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Transform != transform {
		t.Errorf("expected the first raster's transform %v, got %v", transform, result.Transform)
	}
}
