package hotel_models

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

// Hotel is a bookable property. Type is one of hotel, apartment, resort,
// villa, cabin.
type Hotel struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	City          string    `json:"city"`
	Address       string    `json:"address"`
	Distance      string    `json:"distance"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	CheapestPrice float64   `json:"cheapestPrice"`
	Featured      bool      `json:"featured"`
	Photos        []string  `json:"photos"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// HotelTypes enumerates the valid property types, in display order.
var HotelTypes = []string{"hotel", "apartment", "resort", "villa", "cabin"}

// ValidHotelType reports whether t is a recognized property type.
func ValidHotelType(t string) bool {
	for _, v := range HotelTypes {
		if v == t {
			return true
		}
	}
	return false
}

const hotelColumns = `id, name, type, city, address, distance, title, description, cheapest_price, featured, photos, created_at, updated_at`

func scanHotel(row pgx.Row) (*Hotel, error) {
	h := &Hotel{}
	err := row.Scan(
		&h.ID, &h.Name, &h.Type, &h.City, &h.Address, &h.Distance, &h.Title,
		&h.Description, &h.CheapestPrice, &h.Featured, &h.Photos,
		&h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if h.Photos == nil {
		h.Photos = []string{}
	}
	return h, nil
}

// NewHotel builds a Hotel with a fresh id and defaulted type.
func NewHotel(name, hotelType, city, address string) (*Hotel, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate UUID for hotel: %w", err)
	}
	if hotelType == "" {
		hotelType = "hotel"
	}
	now := time.Now()
	return &Hotel{
		ID:        id,
		Name:      name,
		Type:      hotelType,
		City:      city,
		Address:   address,
		Photos:    []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// CreateHotel inserts a new hotel record.
func CreateHotel(ctx context.Context, db *pgxpool.Pool, h *Hotel) (*Hotel, error) {
	logger.InfoLogger.Infof("Creating hotel %q in %s", h.Name, h.City)

	query := `
		INSERT INTO hotels (
			id, name, type, city, address, distance, title, description,
			cheapest_price, featured, photos, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := db.Exec(ctx, query,
		h.ID, h.Name, h.Type, h.City, h.Address, h.Distance, h.Title,
		h.Description, h.CheapestPrice, h.Featured, h.Photos,
		h.CreatedAt, h.UpdatedAt,
	)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to insert hotel: %v", err)
		return nil, fmt.Errorf("failed to create hotel: %w", err)
	}
	return h, nil
}

// UpdateHotelInput carries the editable hotel fields; nil leaves a field
// unchanged.
type UpdateHotelInput struct {
	Name          *string  `json:"name"`
	Type          *string  `json:"type"`
	City          *string  `json:"city"`
	Address       *string  `json:"address"`
	Distance      *string  `json:"distance"`
	Title         *string  `json:"title"`
	Description   *string  `json:"description"`
	CheapestPrice *float64 `json:"cheapestPrice"`
	Featured      *bool    `json:"featured"`
	Photos        []string `json:"photos"`
}

// UpdateHotel applies a partial update and returns the fresh record.
func UpdateHotel(ctx context.Context, db *pgxpool.Pool, hotelID uuid.UUID, input UpdateHotelInput) (*Hotel, error) {
	query := `
		UPDATE hotels SET
			name = COALESCE($2, name),
			type = COALESCE($3, type),
			city = COALESCE($4, city),
			address = COALESCE($5, address),
			distance = COALESCE($6, distance),
			title = COALESCE($7, title),
			description = COALESCE($8, description),
			cheapest_price = COALESCE($9, cheapest_price),
			featured = COALESCE($10, featured),
			photos = COALESCE($11, photos),
			updated_at = NOW()
		WHERE id = $1`

	cmdTag, err := db.Exec(ctx, query,
		hotelID, input.Name, input.Type, input.City, input.Address,
		input.Distance, input.Title, input.Description, input.CheapestPrice,
		input.Featured, input.Photos,
	)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to update hotel %s: %v", hotelID, err)
		return nil, fmt.Errorf("failed to update hotel: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, utils.ErrHotelNotFound
	}

	return GetHotelByID(ctx, db, hotelID)
}

// DeleteHotel removes a hotel. Rooms and room numbers cascade away with it.
func DeleteHotel(ctx context.Context, db *pgxpool.Pool, hotelID uuid.UUID) error {
	cmdTag, err := db.Exec(ctx, `DELETE FROM hotels WHERE id = $1`, hotelID)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to delete hotel %s: %v", hotelID, err)
		return fmt.Errorf("failed to delete hotel: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return utils.ErrHotelNotFound
	}

	logger.InfoLogger.Infof("Hotel %s deleted", hotelID)
	return nil
}

// GetHotelByID fetches a single hotel.
func GetHotelByID(ctx context.Context, db *pgxpool.Pool, hotelID uuid.UUID) (*Hotel, error) {
	query := fmt.Sprintf(`SELECT %s FROM hotels WHERE id = $1`, hotelColumns)

	hotel, err := scanHotel(db.QueryRow(ctx, query, hotelID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.ErrHotelNotFound
		}
		logger.ErrorLogger.Errorf("Failed to fetch hotel %s: %v", hotelID, err)
		return nil, fmt.Errorf("database error fetching hotel: %w", err)
	}
	return hotel, nil
}

// HotelFilter narrows the hotel listing. Zero values mean "no filter".
type HotelFilter struct {
	City     string
	Type     string
	MinPrice *float64
	MaxPrice *float64
	Featured *bool
	Limit    int
}

// ListHotels returns hotels matching the filter.
func ListHotels(ctx context.Context, db *pgxpool.Pool, filter HotelFilter) ([]Hotel, error) {
	query := fmt.Sprintf(`SELECT %s FROM hotels WHERE 1=1`, hotelColumns)
	args := []interface{}{}

	if filter.City != "" {
		args = append(args, filter.City)
		query += fmt.Sprintf(` AND LOWER(city) = LOWER($%d)`, len(args))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		query += fmt.Sprintf(` AND type = $%d`, len(args))
	}
	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		query += fmt.Sprintf(` AND cheapest_price >= $%d`, len(args))
	}
	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		query += fmt.Sprintf(` AND cheapest_price <= $%d`, len(args))
	}
	if filter.Featured != nil {
		args = append(args, *filter.Featured)
		query += fmt.Sprintf(` AND featured = $%d`, len(args))
	}
	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to list hotels: %v", err)
		return nil, fmt.Errorf("database error listing hotels: %w", err)
	}
	defer rows.Close()

	hotels := make([]Hotel, 0)
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan hotel row: %w", err)
		}
		hotels = append(hotels, *h)
	}
	return hotels, rows.Err()
}

// CountByCity returns the hotel count for each requested city,
// case-insensitively, preserving input order.
func CountByCity(ctx context.Context, db *pgxpool.Pool, cities []string) ([]int, error) {
	counts := make([]int, len(cities))
	for i, city := range cities {
		var count int
		err := db.QueryRow(ctx,
			`SELECT COUNT(*) FROM hotels WHERE LOWER(city) = LOWER($1)`, city,
		).Scan(&count)
		if err != nil {
			logger.ErrorLogger.Errorf("Failed to count hotels for city %q: %v", city, err)
			return nil, fmt.Errorf("database error counting hotels: %w", err)
		}
		counts[i] = count
	}
	return counts, nil
}

// TypeCount pairs a property type with how many hotels carry it.
type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// CountByType returns hotel counts per property type, in the fixed display
// order the client expects.
func CountByType(ctx context.Context, db *pgxpool.Pool) ([]TypeCount, error) {
	rows, err := db.Query(ctx, `SELECT type, COUNT(*) FROM hotels GROUP BY type`)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to count hotels by type: %v", err)
		return nil, fmt.Errorf("database error counting hotels: %w", err)
	}
	defer rows.Close()

	byType := map[string]int{}
	for rows.Next() {
		var t string
		var count int
		if err := rows.Scan(&t, &count); err != nil {
			return nil, fmt.Errorf("failed to scan count row: %w", err)
		}
		byType[t] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// The client labels plural variants; keep the historical shape.
	labels := map[string]string{
		"hotel":     "hotel",
		"apartment": "apartments",
		"resort":    "resorts",
		"villa":     "villas",
		"cabin":     "cabins",
	}

	counts := make([]TypeCount, 0, len(HotelTypes))
	for _, t := range HotelTypes {
		counts = append(counts, TypeCount{Type: labels[t], Count: byType[t]})
	}
	return counts, nil
}
