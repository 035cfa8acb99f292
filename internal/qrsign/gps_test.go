package qrsign_test

import (
	"math"
	"testing"

	"github.com/baitolink/backend/internal/qrsign"
)

var shibuya = qrsign.Coordinate{Latitude: 35.658034, Longitude: 139.701636}

func TestValidateGPS_ExactLocation(t *testing.T) {
	r := qrsign.ValidateGPS(shibuya, shibuya, 200)
	if !r.Valid {
		t.Fatalf("a worker exactly at the restaurant must always pass, got %+v", r)
	}
	if r.DistanceM != 0 {
		t.Errorf("DistanceM = %v, want 0", r.DistanceM)
	}
}

func TestValidateGPS_JustOutsideRadius(t *testing.T) {
	// ~1 degree latitude is ~111km; offset enough to land a bit over 200m out.
	worker := qrsign.Coordinate{Latitude: shibuya.Latitude + 0.00190, Longitude: shibuya.Longitude}
	want := qrsign.HaversineDistance(worker, shibuya)
	if want <= 200 || want > 250 {
		t.Fatalf("fixture drifted: distance %v not in (200, 250]", want)
	}

	r := qrsign.ValidateGPS(worker, shibuya, 200)
	if r.Valid {
		t.Fatal("worker beyond the radius must be rejected")
	}
	if r.ErrorCode != qrsign.CodeGPSOutOfRange {
		t.Errorf("ErrorCode = %s, want GPS_OUT_OF_RANGE", r.ErrorCode)
	}
	if math.Abs(r.DistanceM-want) > 1 {
		t.Errorf("reported distance %v not within rounding tolerance of %v", r.DistanceM, want)
	}
}

func TestValidateGPS_InsideRadius(t *testing.T) {
	worker := qrsign.Coordinate{Latitude: shibuya.Latitude + 0.00100, Longitude: shibuya.Longitude}
	if d := qrsign.HaversineDistance(worker, shibuya); d >= 200 {
		t.Fatalf("fixture drifted: distance %v should be under 200", d)
	}
	if r := qrsign.ValidateGPS(worker, shibuya, 200); !r.Valid {
		t.Errorf("worker inside the radius should pass, got %+v", r)
	}
}

func TestValidateGPS_DefaultRadius(t *testing.T) {
	worker := qrsign.Coordinate{Latitude: shibuya.Latitude + 0.00100, Longitude: shibuya.Longitude}
	if r := qrsign.ValidateGPS(worker, shibuya, 0); !r.Valid {
		t.Errorf("zero radius should fall back to the 200m default, got %+v", r)
	}
}

func TestHaversineDistance_KnownPair(t *testing.T) {
	// Shibuya to Shinjuku station is roughly 3.4km.
	shinjuku := qrsign.Coordinate{Latitude: 35.690921, Longitude: 139.700258}
	d := qrsign.HaversineDistance(shibuya, shinjuku)
	if d < 3200 || d > 3900 {
		t.Errorf("Shibuya-Shinjuku distance = %vm, expected ~3.4km", d)
	}
	// Symmetry.
	if back := qrsign.HaversineDistance(shinjuku, shibuya); math.Abs(back-d) > 1e-6 {
		t.Errorf("distance should be symmetric: %v vs %v", d, back)
	}
}
