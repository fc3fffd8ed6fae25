package geo

import (
	"math"
	"testing"
)

func TestCoords3857From4326(t *testing.T) {
	tests := []struct {
		name     string
		lon, lat float64
		wantX    float64
		wantY    float64
	}{
		{"origin", 0, 0, 0, 0},
		{"gulf of thailand", 100.9, 12.5, 11232120, 1402925},
		{"western hemisphere", -100.9, -12.5, -11232120, -1402925},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			point, err := Coords3857From4326(tt.lon, tt.lat)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			xy, ok := point.XY()
			if !ok {
				t.Fatal("point has no coordinates")
			}
			// projection tolerance of a few meters
			if math.Abs(xy.X-tt.wantX) > 1000 {
				t.Errorf("X = %f, want ~%f", xy.X, tt.wantX)
			}
			if math.Abs(xy.Y-tt.wantY) > 1000 {
				t.Errorf("Y = %f, want ~%f", xy.Y, tt.wantY)
			}
		})
	}
}

func TestNewZone_RejectsInvertedBounds(t *testing.T) {
	if _, err := NewZone("bad", 20, 10, 100, 110); err == nil {
		t.Error("expected error for minLat > maxLat")
	}
	if _, err := NewZone("bad", 10, 20, 110, 100); err == nil {
		t.Error("expected error for minLon > maxLon")
	}
}

func TestZone_Contains(t *testing.T) {
	zone, err := NewZone("gulf", 10.0, 14.0, 99.0, 103.0)
	if err != nil {
		t.Fatalf("NewZone: %v", err)
	}

	tests := []struct {
		name     string
		lat, lon float64
		want     bool
	}{
		{"center", 12.0, 101.0, true},
		{"on edge", 10.0, 101.0, true},
		{"corner", 10.0, 99.0, true},
		{"north of zone", 15.0, 101.0, false},
		{"west of zone", 12.0, 98.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := zone.Contains(tt.lat, tt.lon); got != tt.want {
				t.Errorf("Contains(%f, %f) = %v, want %v", tt.lat, tt.lon, got, tt.want)
			}
		})
	}
}

func TestInAnyZone(t *testing.T) {
	north, _ := NewZone("north", 15.0, 20.0, 100.0, 105.0)
	south, _ := NewZone("south", 5.0, 10.0, 100.0, 105.0)
	zones := []Zone{north, south}

	if !InAnyZone(zones, 17.0, 102.0) {
		t.Error("expected position inside north zone to match")
	}
	if !InAnyZone(zones, 7.0, 102.0) {
		t.Error("expected position inside south zone to match")
	}
	if InAnyZone(zones, 12.0, 102.0) {
		t.Error("expected gap between zones not to match")
	}
	if InAnyZone(nil, 17.0, 102.0) {
		t.Error("expected no zones to never match")
	}
}

func TestRangeStrings(t *testing.T) {
	zone, _ := NewZone("gulf", 10.3, 18.3, 109.8, 118.2)
	if got := zone.LatRangeString(); got != "10.3°N - 18.3°N" {
		t.Errorf("LatRangeString() = %q", got)
	}
	if got := zone.LonRangeString(); got != "109.8°E - 118.2°E" {
		t.Errorf("LonRangeString() = %q", got)
	}

	southern, _ := NewZone("coral sea", -20.0, -10.0, 150.0, 160.0)
	if got := southern.LatRangeString(); got != "20.0°S - 10.0°S" {
		t.Errorf("LatRangeString() = %q", got)
	}

	western, _ := NewZone("gulf of mexico", 20.0, 30.0, -97.0, -82.0)
	if got := western.LonRangeString(); got != "97.0°W - 82.0°W" {
		t.Errorf("LonRangeString() = %q", got)
	}
}
