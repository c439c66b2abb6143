package room_models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stayvista/stayvista/logger"
	"github.com/stayvista/stayvista/utils"
)

// Room is a room type within a hotel (e.g. "Deluxe Suite"). Physical units
// live in RoomNumbers, each with its own blocked-day calendar.
type Room struct {
	ID          uuid.UUID    `json:"id"`
	HotelID     uuid.UUID    `json:"hotelId"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Price       float64      `json:"price"`
	MaxPeople   int          `json:"maxPeople"`
	Photos      []string     `json:"photos"`
	RoomNumbers []RoomNumber `json:"roomNumbers"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// RoomNumber is one physical, bookable unit. UnavailableDates is a fully
// expanded set of day markers; a day is either blocked or it is not.
type RoomNumber struct {
	ID               uuid.UUID   `json:"id"`
	RoomID           uuid.UUID   `json:"roomId"`
	Number           int         `json:"number"`
	UnavailableDates []time.Time `json:"unavailableDates"`
}

// NewRoom builds a Room with fresh ids for itself and its room numbers.
func NewRoom(hotelID uuid.UUID, title, description string, price float64, maxPeople int, numbers []int) (*Room, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate UUID for room: %w", err)
	}

	now := time.Now()
	room := &Room{
		ID:          id,
		HotelID:     hotelID,
		Title:       title,
		Description: description,
		Price:       price,
		MaxPeople:   maxPeople,
		Photos:      []string{},
		RoomNumbers: make([]RoomNumber, 0, len(numbers)),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, n := range numbers {
		rnID, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("failed to generate UUID for room number: %w", err)
		}
		room.RoomNumbers = append(room.RoomNumbers, RoomNumber{
			ID:               rnID,
			RoomID:           id,
			Number:           n,
			UnavailableDates: []time.Time{},
		})
	}
	return room, nil
}

// CreateRoom inserts a room and its room numbers under the given hotel.
func CreateRoom(ctx context.Context, db *pgxpool.Pool, room *Room) (*Room, error) {
	logger.InfoLogger.Infof("Creating room %q with %d room numbers for hotel %s", room.Title, len(room.RoomNumbers), room.HotelID)

	tx, err := db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM hotels WHERE id = $1)`, room.HotelID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("database error checking hotel: %w", err)
	}
	if !exists {
		return nil, utils.ErrHotelNotFound
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO rooms (id, hotel_id, title, description, price, max_people, photos, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		room.ID, room.HotelID, room.Title, room.Description, room.Price,
		room.MaxPeople, room.Photos, room.CreatedAt, room.UpdatedAt,
	)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to insert room: %v", err)
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	for _, rn := range room.RoomNumbers {
		_, err = tx.Exec(ctx, `
			INSERT INTO room_numbers (id, room_id, number, unavailable_dates)
			VALUES ($1, $2, $3, '{}')`,
			rn.ID, room.ID, rn.Number,
		)
		if err != nil {
			logger.ErrorLogger.Errorf("Failed to insert room number %d: %v", rn.Number, err)
			return nil, fmt.Errorf("failed to create room number: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit room creation: %w", err)
	}
	return room, nil
}

// UpdateRoomInput carries the editable room fields; nil leaves a field
// unchanged.
type UpdateRoomInput struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	MaxPeople   *int     `json:"maxPeople"`
	Photos      []string `json:"photos"`
}

// UpdateRoom applies a partial update and returns the fresh record.
func UpdateRoom(ctx context.Context, db *pgxpool.Pool, roomID uuid.UUID, input UpdateRoomInput) (*Room, error) {
	query := `
		UPDATE rooms SET
			title = COALESCE($2, title),
			description = COALESCE($3, description),
			price = COALESCE($4, price),
			max_people = COALESCE($5, max_people),
			photos = COALESCE($6, photos),
			updated_at = NOW()
		WHERE id = $1`

	cmdTag, err := db.Exec(ctx, query, roomID, input.Title, input.Description, input.Price, input.MaxPeople, input.Photos)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to update room %s: %v", roomID, err)
		return nil, fmt.Errorf("failed to update room: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, utils.ErrRoomNotFound
	}

	return GetRoomByID(ctx, db, roomID)
}

// DeleteRoom removes a room; its room numbers cascade away and the hotel no
// longer references it.
func DeleteRoom(ctx context.Context, db *pgxpool.Pool, roomID uuid.UUID) error {
	cmdTag, err := db.Exec(ctx, `DELETE FROM rooms WHERE id = $1`, roomID)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to delete room %s: %v", roomID, err)
		return fmt.Errorf("failed to delete room: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return utils.ErrRoomNotFound
	}

	logger.InfoLogger.Infof("Room %s deleted", roomID)
	return nil
}

// GetRoomByID fetches a room with its room numbers.
func GetRoomByID(ctx context.Context, db *pgxpool.Pool, roomID uuid.UUID) (*Room, error) {
	room := &Room{}
	err := db.QueryRow(ctx, `
		SELECT id, hotel_id, title, description, price, max_people, photos, created_at, updated_at
		FROM rooms WHERE id = $1`, roomID,
	).Scan(
		&room.ID, &room.HotelID, &room.Title, &room.Description, &room.Price,
		&room.MaxPeople, &room.Photos, &room.CreatedAt, &room.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.ErrRoomNotFound
		}
		logger.ErrorLogger.Errorf("Failed to fetch room %s: %v", roomID, err)
		return nil, fmt.Errorf("database error fetching room: %w", err)
	}

	numbers, err := getRoomNumbers(ctx, db, []uuid.UUID{room.ID})
	if err != nil {
		return nil, err
	}
	room.RoomNumbers = numbers[room.ID]
	if room.RoomNumbers == nil {
		room.RoomNumbers = []RoomNumber{}
	}
	if room.Photos == nil {
		room.Photos = []string{}
	}
	return room, nil
}

// GetRooms lists every room, newest first, with room numbers attached.
func GetRooms(ctx context.Context, db *pgxpool.Pool) ([]Room, error) {
	return queryRooms(ctx, db, `
		SELECT id, hotel_id, title, description, price, max_people, photos, created_at, updated_at
		FROM rooms ORDER BY created_at DESC`)
}

// GetRoomsForHotel lists the rooms belonging to one hotel.
func GetRoomsForHotel(ctx context.Context, db *pgxpool.Pool, hotelID uuid.UUID) ([]Room, error) {
	return queryRooms(ctx, db, `
		SELECT id, hotel_id, title, description, price, max_people, photos, created_at, updated_at
		FROM rooms WHERE hotel_id = $1 ORDER BY created_at`, hotelID)
}

func queryRooms(ctx context.Context, db *pgxpool.Pool, query string, args ...interface{}) ([]Room, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to list rooms: %v", err)
		return nil, fmt.Errorf("database error listing rooms: %w", err)
	}
	defer rows.Close()

	rooms := make([]Room, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		room := Room{}
		err := rows.Scan(
			&room.ID, &room.HotelID, &room.Title, &room.Description, &room.Price,
			&room.MaxPeople, &room.Photos, &room.CreatedAt, &room.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan room row: %w", err)
		}
		if room.Photos == nil {
			room.Photos = []string{}
		}
		rooms = append(rooms, room)
		ids = append(ids, room.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	numbers, err := getRoomNumbers(ctx, db, ids)
	if err != nil {
		return nil, err
	}
	for i := range rooms {
		rooms[i].RoomNumbers = numbers[rooms[i].ID]
		if rooms[i].RoomNumbers == nil {
			rooms[i].RoomNumbers = []RoomNumber{}
		}
	}
	return rooms, nil
}

func getRoomNumbers(ctx context.Context, db *pgxpool.Pool, roomIDs []uuid.UUID) (map[uuid.UUID][]RoomNumber, error) {
	result := make(map[uuid.UUID][]RoomNumber, len(roomIDs))
	if len(roomIDs) == 0 {
		return result, nil
	}

	rows, err := db.Query(ctx, `
		SELECT id, room_id, number, unavailable_dates
		FROM room_numbers WHERE room_id = ANY($1) ORDER BY number`, roomIDs)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to list room numbers: %v", err)
		return nil, fmt.Errorf("database error listing room numbers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		rn := RoomNumber{}
		if err := rows.Scan(&rn.ID, &rn.RoomID, &rn.Number, &rn.UnavailableDates); err != nil {
			return nil, fmt.Errorf("failed to scan room number row: %w", err)
		}
		if rn.UnavailableDates == nil {
			rn.UnavailableDates = []time.Time{}
		}
		result[rn.RoomID] = append(result[rn.RoomID], rn)
	}
	return result, rows.Err()
}
