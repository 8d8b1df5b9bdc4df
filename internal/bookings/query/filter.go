// Package query composes optional booking filters into a single store
// predicate. All supplied filters combine conjunctively; omitted ones
// impose no constraint. The Mongo document and the in-memory predicate
// must stay equivalent — the tests hold them to the same cases.
package query

import (
	"sort"

	"resbook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
)

// BuildMongoFilter translates the filter into a Mongo query document.
func BuildMongoFilter(f model.BookingFilter) bson.M {
	filter := bson.M{}

	if f.ResourceID != "" {
		filter["resource_id"] = f.ResourceID
	}
	if f.OwnerID != "" {
		filter["owner_id"] = f.OwnerID
	}
	if f.Status != "" {
		filter["status"] = string(f.Status)
	}
	if f.StartFrom != nil {
		filter["start_at"] = bson.M{"$gte": *f.StartFrom}
	}
	if f.EndUntil != nil {
		filter["end_at"] = bson.M{"$lte": *f.EndUntil}
	}

	return filter
}

// Matches is the pure equivalent of BuildMongoFilter for in-memory
// evaluation.
func Matches(b *model.Booking, f model.BookingFilter) bool {
	if f.ResourceID != "" && b.ResourceID != f.ResourceID {
		return false
	}
	if f.OwnerID != "" && b.OwnerID != f.OwnerID {
		return false
	}
	if f.Status != "" && b.Status != f.Status {
		return false
	}
	if f.StartFrom != nil && b.Window.Start.Before(*f.StartFrom) {
		return false
	}
	if f.EndUntil != nil && b.Window.End.After(*f.EndUntil) {
		return false
	}
	return true
}

// SortByStartDesc orders bookings by window start, newest first, with id
// as the tiebreaker so pagination is stable.
func SortByStartDesc(bookings []*model.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		if bookings[i].Window.Start.Equal(bookings[j].Window.Start) {
			return bookings[i].ID < bookings[j].ID
		}
		return bookings[i].Window.Start.After(bookings[j].Window.Start)
	})
}

// SortSpec is the Mongo counterpart of SortByStartDesc.
func SortSpec() bson.D {
	return bson.D{{Key: "start_at", Value: -1}, {Key: "_id", Value: 1}}
}

// Page applies offset/limit to an already-sorted slice.
func Page(bookings []*model.Booking, limit int, offset int64) []*model.Booking {
	if offset >= int64(len(bookings)) {
		return nil
	}
	page := bookings[offset:]
	if limit > 0 && limit < len(page) {
		page = page[:limit]
	}
	return page
}
