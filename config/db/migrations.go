package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stayvista/stayvista/logger"
)

// RunMigrations ensures all required tables exist.
// Note: in production, use a proper migration tool.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	logger.InfoLogger.Info("Checking database schema...")

	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL,
			country TEXT DEFAULT '',
			city TEXT DEFAULT '',
			phone TEXT DEFAULT '',
			img TEXT DEFAULT '',
			is_admin BOOLEAN NOT NULL DEFAULT FALSE,
			super_admin BOOLEAN NOT NULL DEFAULT FALSE,
			managed_hotel UUID,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS hotels (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			type TEXT NOT NULL DEFAULT 'hotel'
				CHECK (type IN ('hotel', 'apartment', 'resort', 'villa', 'cabin')),
			city TEXT NOT NULL,
			address TEXT NOT NULL,
			distance TEXT DEFAULT '',
			title TEXT DEFAULT '',
			description TEXT DEFAULT '',
			cheapest_price NUMERIC(12,2) NOT NULL DEFAULT 0,
			featured BOOLEAN NOT NULL DEFAULT FALSE,
			photos TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS rooms (
			id UUID PRIMARY KEY,
			hotel_id UUID NOT NULL REFERENCES hotels(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			description TEXT DEFAULT '',
			price NUMERIC(12,2) NOT NULL DEFAULT 0,
			max_people INT NOT NULL DEFAULT 1,
			photos TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rooms_hotel ON rooms(hotel_id)`,
		`CREATE TABLE IF NOT EXISTS room_numbers (
			id UUID PRIMARY KEY,
			room_id UUID NOT NULL REFERENCES rooms(id) ON DELETE CASCADE,
			number INT NOT NULL,
			unavailable_dates DATE[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_room_numbers_room ON room_numbers(room_id)`,
		`CREATE TABLE IF NOT EXISTS bookings (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id),
			hotel_id UUID NOT NULL REFERENCES hotels(id),
			check_in DATE NOT NULL,
			check_out DATE NOT NULL,
			nights INT NOT NULL CHECK (nights >= 1),
			adults INT NOT NULL DEFAULT 1 CHECK (adults >= 1),
			children INT NOT NULL DEFAULT 0 CHECK (children >= 0),
			status TEXT NOT NULL DEFAULT 'pending'
				CHECK (status IN ('pending', 'confirmed', 'completed', 'cancelled')),
			total_amount NUMERIC(12,2) NOT NULL CHECK (total_amount >= 0),
			notes TEXT DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_user ON bookings(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_hotel ON bookings(hotel_id, created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS booking_rooms (
			booking_id UUID NOT NULL REFERENCES bookings(id) ON DELETE CASCADE,
			room_id UUID NOT NULL REFERENCES rooms(id),
			room_number_id UUID NOT NULL,
			label TEXT NOT NULL,
			price NUMERIC(12,2) NOT NULL CHECK (price >= 0),
			position INT NOT NULL,
			PRIMARY KEY (booking_id, position)
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id UUID PRIMARY KEY,
			booking_id UUID NOT NULL REFERENCES bookings(id),
			user_id UUID NOT NULL REFERENCES users(id),
			hotel_id UUID NOT NULL REFERENCES hotels(id),
			amount NUMERIC(12,2) NOT NULL CHECK (amount >= 0),
			currency TEXT NOT NULL DEFAULT 'INR',
			method TEXT NOT NULL DEFAULT 'manual'
				CHECK (method IN ('manual', 'card', 'bank', 'other')),
			status TEXT NOT NULL DEFAULT 'captured'
				CHECK (status IN ('pending', 'captured', 'refunded', 'failed')),
			reference TEXT NOT NULL,
			payment_gateway TEXT NOT NULL DEFAULT 'StayPay',
			card_brand TEXT DEFAULT '',
			card_last4 TEXT DEFAULT '',
			billing_name TEXT DEFAULT '',
			billing_email TEXT DEFAULT '',
			notes TEXT DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_reference ON transactions(reference)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_user ON transactions(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_hotel ON transactions(hotel_id, created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	logger.InfoLogger.Info("Database schema is up to date.")
	return nil
}
