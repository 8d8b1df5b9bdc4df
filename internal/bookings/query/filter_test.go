package query

import (
	"testing"
	"time"

	"resbook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
)

func booking(id, resourceID, ownerID string, status model.BookingStatus, start, end time.Time) *model.Booking {
	return &model.Booking{
		ID:         id,
		ResourceID: resourceID,
		OwnerID:    ownerID,
		Status:     status,
		Window:     model.NewTimeWindow(start, end),
	}
}

func TestBuildMongoFilterEmpty(t *testing.T) {
	filter := BuildMongoFilter(model.BookingFilter{})
	if len(filter) != 0 {
		t.Errorf("empty filter should produce an empty document, got %v", filter)
	}
}

func TestBuildMongoFilterComposesConjunctively(t *testing.T) {
	from := time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2026, time.July, 31, 0, 0, 0, 0, time.UTC)

	filter := BuildMongoFilter(model.BookingFilter{
		ResourceID: "r1",
		OwnerID:    "alice",
		Status:     model.StatusActive,
		StartFrom:  &from,
		EndUntil:   &until,
	})

	if filter["resource_id"] != "r1" {
		t.Errorf("resource_id = %v", filter["resource_id"])
	}
	if filter["owner_id"] != "alice" {
		t.Errorf("owner_id = %v", filter["owner_id"])
	}
	if filter["status"] != "active" {
		t.Errorf("status = %v", filter["status"])
	}
	if got := filter["start_at"].(bson.M)["$gte"]; got != from {
		t.Errorf("start_at $gte = %v, want %v", got, from)
	}
	if got := filter["end_at"].(bson.M)["$lte"]; got != until {
		t.Errorf("end_at $lte = %v, want %v", got, until)
	}
}

func TestMatches(t *testing.T) {
	day := time.Date(2026, time.July, 10, 0, 0, 0, 0, time.UTC)
	b := booking("b1", "r1", "alice", model.StatusActive, day.Add(10*time.Hour), day.Add(11*time.Hour))

	from := day
	until := day.Add(24 * time.Hour)
	otherDay := day.Add(48 * time.Hour)

	tests := []struct {
		name   string
		filter model.BookingFilter
		want   bool
	}{
		{"empty filter matches everything", model.BookingFilter{}, true},
		{"matching resource", model.BookingFilter{ResourceID: "r1"}, true},
		{"different resource", model.BookingFilter{ResourceID: "r2"}, false},
		{"matching owner", model.BookingFilter{OwnerID: "alice"}, true},
		{"different owner", model.BookingFilter{OwnerID: "bob"}, false},
		{"matching status", model.BookingFilter{Status: model.StatusActive}, true},
		{"different status", model.BookingFilter{Status: model.StatusCanceled}, false},
		{"within date range", model.BookingFilter{StartFrom: &from, EndUntil: &until}, true},
		{"starts before range", model.BookingFilter{StartFrom: &otherDay}, false},
		{"ends after range", model.BookingFilter{EndUntil: &from}, false},
		{
			"all filters must hold",
			model.BookingFilter{ResourceID: "r1", OwnerID: "bob"},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(b, tt.filter); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSortByStartDescIsStable(t *testing.T) {
	day := time.Date(2026, time.July, 10, 0, 0, 0, 0, time.UTC)
	bookings := []*model.Booking{
		booking("b1", "r1", "a", model.StatusActive, day.Add(9*time.Hour), day.Add(10*time.Hour)),
		booking("b3", "r1", "a", model.StatusActive, day.Add(11*time.Hour), day.Add(12*time.Hour)),
		booking("b2", "r1", "a", model.StatusActive, day.Add(11*time.Hour), day.Add(13*time.Hour)),
	}

	SortByStartDesc(bookings)

	gotIDs := []string{bookings[0].ID, bookings[1].ID, bookings[2].ID}
	wantIDs := []string{"b2", "b3", "b1"}
	for i := range wantIDs {
		if gotIDs[i] != wantIDs[i] {
			t.Fatalf("order = %v, want %v", gotIDs, wantIDs)
		}
	}
}

func TestPage(t *testing.T) {
	day := time.Date(2026, time.July, 10, 0, 0, 0, 0, time.UTC)
	var bookings []*model.Booking
	for i := 0; i < 5; i++ {
		bookings = append(bookings, booking(
			string(rune('a'+i)), "r1", "u", model.StatusActive,
			day.Add(time.Duration(i)*time.Hour), day.Add(time.Duration(i+1)*time.Hour),
		))
	}

	if got := Page(bookings, 2, 0); len(got) != 2 || got[0].ID != "a" {
		t.Errorf("first page wrong: %v", got)
	}
	if got := Page(bookings, 2, 4); len(got) != 1 || got[0].ID != "e" {
		t.Errorf("last partial page wrong: %v", got)
	}
	if got := Page(bookings, 2, 10); got != nil {
		t.Errorf("offset past end should be empty, got %v", got)
	}
	if got := Page(bookings, 0, 0); len(got) != 5 {
		t.Errorf("zero limit should return all, got %d", len(got))
	}
}
