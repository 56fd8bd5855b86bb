package model

import (
	"testing"
	"time"
)

func TestIsLiveClassification(t *testing.T) {
	cases := []struct {
		name string
		loc  LocationMessage
		live bool
	}{
		{
			name: "all metadata empty is live",
			loc:  LocationMessage{Latitude: 19.4326, Longitude: -99.1332},
			live: true,
		},
		{
			name: "address set means pinned",
			loc:  LocationMessage{Latitude: 19.4326, Longitude: -99.1332, Address: "Av. Reforma 123"},
			live: false,
		},
		{
			name: "place name set means pinned",
			loc:  LocationMessage{Latitude: 19.4326, Longitude: -99.1332, PlaceName: "Oficina Central"},
			live: false,
		},
		{
			name: "url set means pinned",
			loc:  LocationMessage{Latitude: 19.4326, Longitude: -99.1332, MapURL: "https://maps.example/abc"},
			live: false,
		},
		{
			name: "all metadata set means pinned",
			loc: LocationMessage{
				Latitude: 19.4326, Longitude: -99.1332,
				Address: "Av. Reforma 123", PlaceName: "Oficina Central", MapURL: "https://maps.example/abc",
			},
			live: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.loc.IsLive(); got != tc.live {
				t.Fatalf("IsLive() = %v, want %v", got, tc.live)
			}
		})
	}
}

func TestHasCoordinates(t *testing.T) {
	if (LocationMessage{}).HasCoordinates() {
		t.Fatal("zero coordinates should be treated as missing")
	}
	if !(LocationMessage{Latitude: 19.4326, Longitude: -99.1332}).HasCoordinates() {
		t.Fatal("non-zero coordinates should be present")
	}
	// 单轴为零仍是合法坐标（赤道、本初子午线）
	if !(LocationMessage{Latitude: 0, Longitude: -99.1332}).HasCoordinates() {
		t.Fatal("zero latitude with non-zero longitude is still a coordinate")
	}
}

func TestNewLocationMessage(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	msg := InboundMessage{
		ID:   "wamid.abc",
		From: "5215512345678",
		Type: "location",
		Location: &LocationContent{
			Latitude:  19.4326,
			Longitude: -99.1332,
			Name:      "Oficina Central",
			Address:   "Av. Reforma 123",
		},
	}

	loc := NewLocationMessage(msg, "Ana", now)

	if loc.SenderID != "5215512345678" || loc.SenderName != "Ana" {
		t.Fatalf("sender fields not carried over: %+v", loc)
	}
	if loc.Latitude != 19.4326 || loc.Longitude != -99.1332 {
		t.Fatalf("coordinates not carried over: %+v", loc)
	}
	if loc.PlaceName != "Oficina Central" || loc.Address != "Av. Reforma 123" {
		t.Fatalf("metadata not carried over: %+v", loc)
	}
	if !loc.ReceivedAt.Equal(now) {
		t.Fatalf("ReceivedAt = %v, want %v", loc.ReceivedAt, now)
	}
}

func TestWorkedDuration(t *testing.T) {
	r := ValidationResult{TimeWorkedFormatted: "8h 15m", HoursWorked: "8.25"}
	if r.WorkedDuration() != "8h 15m" {
		t.Fatalf("formatted field should win, got %q", r.WorkedDuration())
	}

	r = ValidationResult{HoursWorked: "8.25"}
	if r.WorkedDuration() != "8.25" {
		t.Fatalf("fallback field should be used, got %q", r.WorkedDuration())
	}

	if (ValidationResult{}).WorkedDuration() != "" {
		t.Fatal("empty result should yield empty duration")
	}
}
