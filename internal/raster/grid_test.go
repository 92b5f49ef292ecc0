package raster

import (
	"errors"
	"testing"
)

func TestBandReturnsMissingBandError(t *testing.T) {
	bundle := &BandBundle{Bands: map[string]*Grid{
		"red": {Data: [][]float64{{1}}},
	}}

	if _, err := bundle.Band("red"); err != nil {
		t.Errorf("expected red band to be present, got error: %v", err)
	}

	_, err := bundle.Band("nir")
	if err == nil {
		t.Fatal("expected an error for a missing band")
	}
	var missing MissingBandError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingBandError, got %T: %v", err, err)
	}
	if missing.Band != "nir" {
		t.Errorf("expected the error to name band nir, got %q", missing.Band)
	}
}

func TestToDisplayGridFlipsRows(t *testing.T) {
	grid := &Grid{Data: [][]float64{
		{1, 2},
		{3, 4},
		{5, 6},
	}}

	flipped := ToDisplayGrid(grid)

	expected := [][]float64{
		{5, 6},
		{3, 4},
		{1, 2},
	}
	for y := range expected {
		for x := range expected[y] {
			if flipped[y][x] != expected[y][x] {
				t.Errorf("cell (%d,%d): expected %v, got %v", y, x, expected[y][x], flipped[y][x])
			}
		}
	}

	// Flipping must not alias or mutate the source grid.
	flipped[0][0] = 99
	if grid.Data[2][0] != 5 {
		t.Errorf("flip aliased the source grid, cell (2,0) became %v", grid.Data[2][0])
	}
}

func TestToDisplayGridIsInvolution(t *testing.T) {
	grid := &Grid{Data: [][]float64{
		{1, 2},
		{3, 4},
	}}

	twice := ToDisplayGrid(&Grid{Data: ToDisplayGrid(grid)})
	for y := range grid.Data {
		for x := range grid.Data[y] {
			if twice[y][x] != grid.Data[y][x] {
				t.Errorf("cell (%d,%d): expected %v after double flip, got %v", y, x, grid.Data[y][x], twice[y][x])
			}
		}
	}
}

func TestSameShape(t *testing.T) {
	a := NewGrid(2, 3, [6]float64{})
	b := NewGrid(2, 3, [6]float64{})
	c := NewGrid(3, 2, [6]float64{})

	if !a.SameShape(b) {
		t.Error("expected 2x3 grids to share a shape")
	}
	if a.SameShape(c) {
		t.Error("expected 2x3 and 3x2 grids to differ in shape")
	}
}
