package domain

import (
	"encoding/json"
	"math"
	"testing"
)

func TestTripIDAcceptsNumberAndString(t *testing.T) {
	var fromNumber struct {
		ID TripID `json:"id"`
	}
	if err := json.Unmarshal([]byte(`{"id": 42}`), &fromNumber); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fromNumber.ID != "42" {
		t.Fatalf("id = %q, want 42", fromNumber.ID)
	}

	var fromString struct {
		ID TripID `json:"id"`
	}
	if err := json.Unmarshal([]byte(`{"id": "T1"}`), &fromString); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fromString.ID != "T1" {
		t.Fatalf("id = %q, want T1", fromString.ID)
	}
}

func TestTripIDMarshalPreservesShape(t *testing.T) {
	numeric, err := json.Marshal(TripID("42"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(numeric) != "42" {
		t.Fatalf("numeric id marshals to %s, want 42", numeric)
	}

	text, err := json.Marshal(TripID("T1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(text) != `"T1"` {
		t.Fatalf("text id marshals to %s, want \"T1\"", text)
	}
}

func TestCoordinatesIsFinite(t *testing.T) {
	if !(Coordinates{Lon: -0.09, Lat: 51.5}).IsFinite() {
		t.Fatal("finite coordinates reported non-finite")
	}

	nan := Coordinates{Lon: 0, Lat: math.NaN()}
	if nan.IsFinite() {
		t.Fatal("NaN latitude reported finite")
	}

	inf := Coordinates{Lon: math.Inf(1), Lat: 0}
	if inf.IsFinite() {
		t.Fatal("infinite longitude reported finite")
	}
}
