package user_models

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

// User is a platform account. Role flags drive authorization: super admins see
// everything, hotel admins are scoped to their managed hotel.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	Country      string     `json:"country"`
	City         string     `json:"city"`
	Phone        string     `json:"phone"`
	Img          string     `json:"img"`
	IsAdmin      bool       `json:"isAdmin"`
	SuperAdmin   bool       `json:"superAdmin"`
	ManagedHotel *uuid.UUID `json:"managedHotel,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

const userColumns = `id, username, email, country, city, phone, img, is_admin, super_admin, managed_hotel, created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	u := &User{}
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.Country, &u.City, &u.Phone, &u.Img,
		&u.IsAdmin, &u.SuperAdmin, &u.ManagedHotel, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetUserByID fetches a single user.
func GetUserByID(ctx context.Context, db *pgxpool.Pool, userID uuid.UUID) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)

	user, err := scanUser(db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.ErrUserNotFound
		}
		logger.ErrorLogger.Errorf("Failed to fetch user %s: %v", userID, err)
		return nil, fmt.Errorf("database error fetching user: %w", err)
	}
	return user, nil
}

// GetUsers lists all users, newest first.
func GetUsers(ctx context.Context, db *pgxpool.Pool) ([]User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users ORDER BY created_at DESC`, userColumns)

	rows, err := db.Query(ctx, query)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to list users: %v", err)
		return nil, fmt.Errorf("database error listing users: %w", err)
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// UpdateUserInput carries the editable profile fields. Nil means "leave
// unchanged".
type UpdateUserInput struct {
	Email   *string `json:"email"`
	Country *string `json:"country"`
	City    *string `json:"city"`
	Phone   *string `json:"phone"`
	Img     *string `json:"img"`
}

// UpdateUser applies a partial profile update and returns the fresh record.
func UpdateUser(ctx context.Context, db *pgxpool.Pool, userID uuid.UUID, input UpdateUserInput) (*User, error) {
	query := `
		UPDATE users SET
			email = COALESCE($2, email),
			country = COALESCE($3, country),
			city = COALESCE($4, city),
			phone = COALESCE($5, phone),
			img = COALESCE($6, img),
			updated_at = NOW()
		WHERE id = $1`

	cmdTag, err := db.Exec(ctx, query, userID, input.Email, input.Country, input.City, input.Phone, input.Img)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to update user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, utils.ErrUserNotFound
	}

	return GetUserByID(ctx, db, userID)
}

// DeleteUser removes a user account.
func DeleteUser(ctx context.Context, db *pgxpool.Pool, userID uuid.UUID) error {
	cmdTag, err := db.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to delete user %s: %v", userID, err)
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return utils.ErrUserNotFound
	}

	logger.InfoLogger.Infof("User %s deleted", userID)
	return nil
}
