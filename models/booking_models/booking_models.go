package booking_models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stayvista/stayvista/logger"
	"github.com/stayvista/stayvista/models/room_models"
	"github.com/stayvista/stayvista/stay"
	"github.com/stayvista/stayvista/utils"
)

// BookingRoom is one selected unit inside a booking. Price is captured at
// booking time and never tracks later room price changes.
type BookingRoom struct {
	RoomID       uuid.UUID `json:"roomId"`
	RoomNumberID uuid.UUID `json:"roomNumberId"`
	Label        string    `json:"roomNumberLabel"`
	Price        float64   `json:"price"`
}

// Guests carries the party size for a stay.
type Guests struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
}

// HotelSummary and UserSummary are the populated reference shapes list
// responses carry.
type HotelSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	City string    `json:"city"`
}

type UserSummary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

// Booking is a guest's reservation of one or more room numbers for a
// half-open [checkIn, checkOut) stay.
type Booking struct {
	ID          uuid.UUID     `json:"id"`
	UserID      uuid.UUID     `json:"userId"`
	HotelID     uuid.UUID     `json:"hotelId"`
	Rooms       []BookingRoom `json:"rooms"`
	CheckIn     time.Time     `json:"checkIn"`
	CheckOut    time.Time     `json:"checkOut"`
	Nights      int           `json:"nights"`
	Guests      Guests        `json:"guests"`
	Status      string        `json:"status"`
	TotalAmount float64       `json:"totalAmount"`
	Notes       string        `json:"notes,omitempty"`
	Hotel       *HotelSummary `json:"hotel,omitempty"`
	User        *UserSummary  `json:"user,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// RoomSelection is one requested unit in a create request. Price, when set,
// overrides the room's stored nightly price; Label overrides the generated
// display label.
type RoomSelection struct {
	RoomID       uuid.UUID
	RoomNumberID uuid.UUID
	Price        *float64
	Label        string
}

// CreateBookingInput is everything booking assembly needs besides the caller
// identity.
type CreateBookingInput struct {
	HotelID    uuid.UUID
	CheckIn    time.Time
	CheckOut   time.Time
	Guests     Guests
	Selections []RoomSelection
	Notes      string
}

// NormalizeGuests applies the historical defaults: at least one adult, no
// negative children.
func NormalizeGuests(g Guests) Guests {
	if g.Adults <= 0 {
		g.Adults = 1
	}
	if g.Children < 0 {
		g.Children = 0
	}
	return g
}

// DefaultLabel is the display label used when the caller does not supply one.
func DefaultLabel(roomTitle string, number int) string {
	return fmt.Sprintf("%s #%d", roomTitle, number)
}

// SelectionPrice resolves the nightly price for a selection: the caller's
// override when present, otherwise the room's stored price.
func SelectionPrice(override *float64, roomPrice float64) float64 {
	if override != nil {
		return *override
	}
	return roomPrice
}

// ComputeTotal sums nightly price times nights over the selected rooms. The
// result is fixed at creation time and never recomputed.
func ComputeTotal(rooms []BookingRoom, nights int) float64 {
	total := 0.0
	for _, r := range rooms {
		total += r.Price * float64(nights)
	}
	return total
}

// CreateBooking assembles and persists a booking. The whole sequence
// (validate selections, reserve each room number's days, insert the record)
// runs in one transaction, so a date conflict on any selected unit rolls
// everything back: no partial booking, no stray blocked days.
func CreateBooking(ctx context.Context, db *pgxpool.Pool, userID uuid.UUID, input CreateBookingInput) (*Booking, error) {
	if len(input.Selections) == 0 {
		return nil, utils.ErrMissingSelection
	}

	stayDays, err := stay.Expand(input.CheckIn, input.CheckOut)
	if err != nil {
		return nil, err
	}
	nights, err := stay.Nights(input.CheckIn, input.CheckOut)
	if err != nil {
		return nil, err
	}
	guests := NormalizeGuests(input.Guests)

	tx, err := db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var hotelExists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM hotels WHERE id = $1)`, input.HotelID).Scan(&hotelExists); err != nil {
		return nil, fmt.Errorf("database error checking hotel: %w", err)
	}
	if !hotelExists {
		return nil, utils.ErrHotelNotFound
	}

	rooms := make([]BookingRoom, 0, len(input.Selections))
	for _, sel := range input.Selections {
		var roomTitle string
		var roomPrice float64
		err := tx.QueryRow(ctx,
			`SELECT title, price FROM rooms WHERE id = $1 AND hotel_id = $2`,
			sel.RoomID, input.HotelID,
		).Scan(&roomTitle, &roomPrice)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, utils.ErrInvalidSelection
			}
			return nil, fmt.Errorf("database error checking room %s: %w", sel.RoomID, err)
		}

		var number int
		err = tx.QueryRow(ctx,
			`SELECT number FROM room_numbers WHERE id = $1 AND room_id = $2`,
			sel.RoomNumberID, sel.RoomID,
		).Scan(&number)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, utils.ErrInvalidSelection
			}
			return nil, fmt.Errorf("database error checking room number %s: %w", sel.RoomNumberID, err)
		}

		label := sel.Label
		if label == "" {
			label = DefaultLabel(roomTitle, number)
		}
		rooms = append(rooms, BookingRoom{
			RoomID:       sel.RoomID,
			RoomNumberID: sel.RoomNumberID,
			Label:        label,
			Price:        SelectionPrice(sel.Price, roomPrice),
		})
	}

	// Reserve every selected unit before writing the booking. Any conflict
	// aborts the whole attempt.
	for _, r := range rooms {
		if err := room_models.ReserveDays(ctx, tx, r.RoomNumberID, stayDays); err != nil {
			logger.WarnLogger.Warnf("Booking rejected, room number %s has a date conflict", r.RoomNumberID)
			return nil, err
		}
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate UUID for booking: %w", err)
	}
	now := time.Now()
	booking := &Booking{
		ID:          id,
		UserID:      userID,
		HotelID:     input.HotelID,
		Rooms:       rooms,
		CheckIn:     stay.Day(input.CheckIn),
		CheckOut:    stay.Day(input.CheckOut),
		Nights:      nights,
		Guests:      guests,
		Status:      StatusPending,
		TotalAmount: ComputeTotal(rooms, nights),
		Notes:       input.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO bookings (id, user_id, hotel_id, check_in, check_out, nights, adults, children, status, total_amount, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		booking.ID, booking.UserID, booking.HotelID, booking.CheckIn, booking.CheckOut,
		booking.Nights, booking.Guests.Adults, booking.Guests.Children,
		booking.Status, booking.TotalAmount, booking.Notes, booking.CreatedAt, booking.UpdatedAt,
	)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to insert booking: %v", err)
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	for i, r := range rooms {
		_, err = tx.Exec(ctx, `
			INSERT INTO booking_rooms (booking_id, room_id, room_number_id, label, price, position)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			booking.ID, r.RoomID, r.RoomNumberID, r.Label, r.Price, i,
		)
		if err != nil {
			logger.ErrorLogger.Errorf("Failed to insert booking room: %v", err)
			return nil, fmt.Errorf("failed to create booking room: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit booking: %w", err)
	}

	logger.InfoLogger.Infof("Booking %s created for user %s (%d rooms, %d nights, total %.2f)",
		booking.ID, userID, len(rooms), nights, booking.TotalAmount)
	return booking, nil
}

const bookingSelect = `
	SELECT b.id, b.user_id, b.hotel_id, b.check_in, b.check_out, b.nights,
	       b.adults, b.children, b.status, b.total_amount, b.notes,
	       b.created_at, b.updated_at,
	       h.name, h.city, u.username, u.email
	FROM bookings b
	JOIN hotels h ON h.id = b.hotel_id
	JOIN users u ON u.id = b.user_id`

func scanBooking(row pgx.Row) (*Booking, error) {
	b := &Booking{}
	var hotelName, hotelCity, username, email string
	err := row.Scan(
		&b.ID, &b.UserID, &b.HotelID, &b.CheckIn, &b.CheckOut, &b.Nights,
		&b.Guests.Adults, &b.Guests.Children, &b.Status, &b.TotalAmount,
		&b.Notes, &b.CreatedAt, &b.UpdatedAt,
		&hotelName, &hotelCity, &username, &email,
	)
	if err != nil {
		return nil, err
	}
	b.Hotel = &HotelSummary{ID: b.HotelID, Name: hotelName, City: hotelCity}
	b.User = &UserSummary{ID: b.UserID, Username: username, Email: email}
	return b, nil
}

func loadBookingRooms(ctx context.Context, db *pgxpool.Pool, bookingIDs []uuid.UUID) (map[uuid.UUID][]BookingRoom, error) {
	result := make(map[uuid.UUID][]BookingRoom, len(bookingIDs))
	if len(bookingIDs) == 0 {
		return result, nil
	}

	rows, err := db.Query(ctx, `
		SELECT booking_id, room_id, room_number_id, label, price
		FROM booking_rooms WHERE booking_id = ANY($1) ORDER BY booking_id, position`, bookingIDs)
	if err != nil {
		return nil, fmt.Errorf("database error listing booking rooms: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var bookingID uuid.UUID
		br := BookingRoom{}
		if err := rows.Scan(&bookingID, &br.RoomID, &br.RoomNumberID, &br.Label, &br.Price); err != nil {
			return nil, fmt.Errorf("failed to scan booking room row: %w", err)
		}
		result[bookingID] = append(result[bookingID], br)
	}
	return result, rows.Err()
}

// GetBookingByID fetches a booking with its room selections and populated
// hotel/user summaries.
func GetBookingByID(ctx context.Context, db *pgxpool.Pool, bookingID uuid.UUID) (*Booking, error) {
	booking, err := scanBooking(db.QueryRow(ctx, bookingSelect+` WHERE b.id = $1`, bookingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.ErrBookingNotFound
		}
		logger.ErrorLogger.Errorf("Failed to fetch booking %s: %v", bookingID, err)
		return nil, fmt.Errorf("database error fetching booking: %w", err)
	}

	rooms, err := loadBookingRooms(ctx, db, []uuid.UUID{booking.ID})
	if err != nil {
		return nil, err
	}
	booking.Rooms = rooms[booking.ID]
	if booking.Rooms == nil {
		booking.Rooms = []BookingRoom{}
	}
	return booking, nil
}

// BookingFilter narrows a booking listing. Zero values mean "no filter".
type BookingFilter struct {
	HotelID *uuid.UUID
	UserID  *uuid.UUID
	Status  string
	From    *time.Time
	To      *time.Time
}

// ScopeFilter restricts a filter to what the caller may see: members only
// their own bookings, hotel admins only their managed hotel. Hotel admins
// without an assignment get ErrForbidden.
func ScopeFilter(auth utils.AuthUser, filter BookingFilter) (BookingFilter, error) {
	if !auth.IsAdmin && !auth.SuperAdmin {
		userID := auth.ID
		filter.UserID = &userID
		return filter, nil
	}
	if !auth.SuperAdmin {
		if auth.ManagedHotel == nil {
			return filter, utils.ErrForbidden
		}
		filter.HotelID = auth.ManagedHotel
	}
	return filter, nil
}

// ListBookings returns bookings matching the filter, newest first.
func ListBookings(ctx context.Context, db *pgxpool.Pool, filter BookingFilter) ([]Booking, error) {
	query := bookingSelect + ` WHERE 1=1`
	args := []interface{}{}

	if filter.HotelID != nil {
		args = append(args, *filter.HotelID)
		query += fmt.Sprintf(` AND b.hotel_id = $%d`, len(args))
	}
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		query += fmt.Sprintf(` AND b.user_id = $%d`, len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(` AND b.status = $%d`, len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(` AND b.created_at >= $%d`, len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(` AND b.created_at <= $%d`, len(args))
	}
	query += ` ORDER BY b.created_at DESC`

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to list bookings: %v", err)
		return nil, fmt.Errorf("database error listing bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]Booking, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking row: %w", err)
		}
		bookings = append(bookings, *b)
		ids = append(ids, b.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	roomsByBooking, err := loadBookingRooms(ctx, db, ids)
	if err != nil {
		return nil, err
	}
	for i := range bookings {
		bookings[i].Rooms = roomsByBooking[bookings[i].ID]
		if bookings[i].Rooms == nil {
			bookings[i].Rooms = []BookingRoom{}
		}
	}
	return bookings, nil
}

// CanViewBooking reports whether the caller may read a booking: the owner,
// a super admin, or the admin of the booking's hotel.
func CanViewBooking(auth utils.AuthUser, b *Booking) bool {
	if auth.SuperAdmin {
		return true
	}
	if auth.IsAdmin {
		return auth.ManagedHotel != nil && *auth.ManagedHotel == b.HotelID
	}
	return b.UserID == auth.ID
}

// UpdateBookingStatus moves a booking through the lifecycle. Transitions the
// state machine does not define are rejected with ErrInvalidStatus.
func UpdateBookingStatus(ctx context.Context, db *pgxpool.Pool, bookingID uuid.UUID, status string) (*Booking, error) {
	if !ValidStatus(status) {
		return nil, utils.ErrInvalidStatus
	}

	var current string
	err := db.QueryRow(ctx, `SELECT status FROM bookings WHERE id = $1`, bookingID).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.ErrBookingNotFound
		}
		return nil, fmt.Errorf("database error fetching booking status: %w", err)
	}
	if !CanTransition(current, status) {
		logger.WarnLogger.Warnf("Rejected booking %s status change %s -> %s", bookingID, current, status)
		return nil, utils.ErrInvalidStatus
	}

	_, err = db.Exec(ctx,
		`UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`,
		bookingID, status,
	)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to update booking %s status: %v", bookingID, err)
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}

	logger.InfoLogger.Infof("Booking %s status updated to %s", bookingID, status)
	return GetBookingByID(ctx, db, bookingID)
}

// ConfirmIfPending transitions a pending booking to confirmed inside an open
// transaction; bookings in any other status are left untouched. Used when a
// captured payment is recorded.
func ConfirmIfPending(ctx context.Context, tx pgx.Tx, bookingID uuid.UUID) error {
	_, err := tx.Exec(ctx,
		`UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1 AND status = $3`,
		bookingID, StatusConfirmed, StatusPending,
	)
	if err != nil {
		return fmt.Errorf("failed to confirm booking: %w", err)
	}
	return nil
}

// DeleteBooking removes a booking and its room selections.
func DeleteBooking(ctx context.Context, db *pgxpool.Pool, bookingID uuid.UUID) error {
	cmdTag, err := db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, bookingID)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to delete booking %s: %v", bookingID, err)
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return utils.ErrBookingNotFound
	}

	logger.InfoLogger.Infof("Booking %s deleted", bookingID)
	return nil
}
