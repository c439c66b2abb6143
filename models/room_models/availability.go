package room_models

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stayvista/stayvista/logger"
	"github.com/stayvista/stayvista/stay"
	"github.com/stayvista/stayvista/utils"
)

// AvailabilityOp selects how a room number's blocked-day set is mutated.
type AvailabilityOp string

const (
	OpAdd    AvailabilityOp = "add"
	OpRemove AvailabilityOp = "remove"
	OpClear  AvailabilityOp = "clear"
)

// ValidAvailabilityOp reports whether op is one of add, remove, clear.
func ValidAvailabilityOp(op AvailabilityOp) bool {
	return op == OpAdd || op == OpRemove || op == OpClear
}

// The blocked-day set lives in a date[] column and every mutation is a single
// statement, so concurrent mutations serialize on the row without a separate
// read-then-write step.
const (
	addDatesQuery = `
		UPDATE room_numbers
		SET unavailable_dates = (
			SELECT COALESCE(array_agg(DISTINCT d ORDER BY d), '{}'::date[])
			FROM unnest(unavailable_dates || $2::date[]) AS d
		), updated_at = NOW()
		WHERE id = $1`

	removeDatesQuery = `
		UPDATE room_numbers
		SET unavailable_dates = (
			SELECT COALESCE(array_agg(d ORDER BY d), '{}'::date[])
			FROM unnest(unavailable_dates) AS d
			WHERE d <> ALL($2::date[])
		), updated_at = NOW()
		WHERE id = $1`

	clearDatesQuery = `
		UPDATE room_numbers
		SET unavailable_dates = '{}', updated_at = NOW()
		WHERE id = $1`

	// reserveDatesQuery only touches the row when none of the requested days
	// are blocked yet; zero rows affected on an existing row means conflict.
	reserveDatesQuery = `
		UPDATE room_numbers
		SET unavailable_dates = (
			SELECT COALESCE(array_agg(DISTINCT d ORDER BY d), '{}'::date[])
			FROM unnest(unavailable_dates || $2::date[]) AS d
		), updated_at = NOW()
		WHERE id = $1 AND NOT (unavailable_dates && $2::date[])`
)

// UpdateAvailability applies an add/remove/clear mutation to one room
// number's blocked-day set. Add and remove are idempotent; days must already
// be parsed and normalized (invalid input is dropped by the caller via
// stay.ParseDays).
func UpdateAvailability(ctx context.Context, db *pgxpool.Pool, roomNumberID uuid.UUID, op AvailabilityOp, days []time.Time) error {
	if (op == OpAdd || op == OpRemove) && len(days) == 0 {
		return utils.ErrNoValidDates
	}

	var cmdTag pgconn.CommandTag
	var err error
	switch op {
	case OpAdd:
		cmdTag, err = db.Exec(ctx, addDatesQuery, roomNumberID, stay.FormatDays(days))
	case OpRemove:
		cmdTag, err = db.Exec(ctx, removeDatesQuery, roomNumberID, stay.FormatDays(days))
	case OpClear:
		cmdTag, err = db.Exec(ctx, clearDatesQuery, roomNumberID)
	default:
		return fmt.Errorf("unknown availability operation %q", op)
	}
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to %s availability for room number %s: %v", op, roomNumberID, err)
		return fmt.Errorf("failed to update availability: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return utils.ErrRoomNumberNotFound
	}

	logger.InfoLogger.Infof("Availability %s applied to room number %s (%d days)", op, roomNumberID, len(days))
	return nil
}

// ReserveDays atomically blocks the stay's days on a room number inside an
// open transaction. It succeeds only when none of the days are already
// blocked, which closes the check-then-act window between availability check
// and booking write: of two concurrent bookings for overlapping days, exactly
// one can win.
func ReserveDays(ctx context.Context, tx pgx.Tx, roomNumberID uuid.UUID, days []time.Time) error {
	if len(days) == 0 {
		return utils.ErrNoValidDates
	}

	cmdTag, err := tx.Exec(ctx, reserveDatesQuery, roomNumberID, stay.FormatDays(days))
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to reserve days on room number %s: %v", roomNumberID, err)
		return fmt.Errorf("failed to reserve days: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return utils.ErrRoomUnavailable
	}
	return nil
}

// UnionDays merges two blocked-day sets, deduplicated and sorted. It mirrors
// the add mutation's SQL semantics.
func UnionDays(existing, incoming []time.Time) []time.Time {
	set := make(map[time.Time]struct{}, len(existing)+len(incoming))
	for _, d := range existing {
		set[stay.Day(d)] = struct{}{}
	}
	for _, d := range incoming {
		set[stay.Day(d)] = struct{}{}
	}

	merged := make([]time.Time, 0, len(set))
	for d := range set {
		merged = append(merged, d)
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].Before(merged[j]) })
	return merged
}

// SubtractDays removes days from a blocked-day set; absent days are ignored.
// It mirrors the remove mutation's SQL semantics.
func SubtractDays(existing, removals []time.Time) []time.Time {
	drop := make(map[time.Time]struct{}, len(removals))
	for _, d := range removals {
		drop[stay.Day(d)] = struct{}{}
	}

	kept := make([]time.Time, 0, len(existing))
	for _, d := range existing {
		if _, ok := drop[stay.Day(d)]; !ok {
			kept = append(kept, stay.Day(d))
		}
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].Before(kept[j]) })
	return kept
}

// RoomNumberAvailability is a room number annotated for a requested stay
// window.
type RoomNumberAvailability struct {
	RoomNumber
	IsUnavailableForRange bool `json:"isUnavailableForRange"`
}

// RoomAvailability is a room whose numbers carry availability flags for a
// requested window.
type RoomAvailability struct {
	Room
	RoomNumbers []RoomNumberAvailability `json:"roomNumbers"`
}

// AnnotateForRange marks each room number of each room as available or not
// for the half-open [checkIn, checkOut) window. An empty window (no dates
// requested) leaves every unit available.
func AnnotateForRange(rooms []Room, stayDays []time.Time) []RoomAvailability {
	annotated := make([]RoomAvailability, 0, len(rooms))
	for _, room := range rooms {
		ra := RoomAvailability{
			Room:        room,
			RoomNumbers: make([]RoomNumberAvailability, 0, len(room.RoomNumbers)),
		}
		for _, rn := range room.RoomNumbers {
			ra.RoomNumbers = append(ra.RoomNumbers, RoomNumberAvailability{
				RoomNumber:            rn,
				IsUnavailableForRange: stay.Conflicts(rn.UnavailableDates, stayDays),
			})
		}
		annotated = append(annotated, ra)
	}
	return annotated
}
