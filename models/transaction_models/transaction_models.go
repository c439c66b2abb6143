package transaction_models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stayvista/stayvista/logger"
	"github.com/stayvista/stayvista/models/booking_models"
	"github.com/stayvista/stayvista/utils"
)

// Payment statuses and methods. Payments run against the in-house mock
// gateway, so a transaction is just a persisted record plus the booking
// confirmation side effect.
const (
	StatusPending  = "pending"
	StatusCaptured = "captured"
	StatusRefunded = "refunded"
	StatusFailed   = "failed"

	DefaultGateway  = "StayPay"
	DefaultCurrency = "INR"
	DefaultMethod   = "manual"
)

// ValidStatus reports whether s is a recognized transaction status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusCaptured, StatusRefunded, StatusFailed:
		return true
	}
	return false
}

// ValidMethod reports whether m is a recognized payment method.
func ValidMethod(m string) bool {
	switch m {
	case "manual", "card", "bank", "other":
		return true
	}
	return false
}

// BookingSummary is the populated booking shape transaction responses carry.
type BookingSummary struct {
	ID          uuid.UUID `json:"id"`
	Status      string    `json:"status"`
	CheckIn     time.Time `json:"checkIn"`
	CheckOut    time.Time `json:"checkOut"`
	TotalAmount float64   `json:"totalAmount"`
}

// Transaction is a payment record for a booking. Only the last four card
// digits are ever stored.
type Transaction struct {
	ID             uuid.UUID                    `json:"id"`
	BookingID      uuid.UUID                    `json:"bookingId"`
	UserID         uuid.UUID                    `json:"userId"`
	HotelID        uuid.UUID                    `json:"hotelId"`
	Amount         float64                      `json:"amount"`
	Currency       string                       `json:"currency"`
	Method         string                       `json:"method"`
	Status         string                       `json:"status"`
	Reference      string                       `json:"reference"`
	PaymentGateway string                       `json:"paymentGateway"`
	CardBrand      string                       `json:"cardBrand,omitempty"`
	CardLast4      string                       `json:"cardLast4,omitempty"`
	BillingName    string                       `json:"billingName,omitempty"`
	BillingEmail   string                       `json:"billingEmail,omitempty"`
	Notes          string                       `json:"notes,omitempty"`
	Booking        *BookingSummary              `json:"booking,omitempty"`
	Hotel          *booking_models.HotelSummary `json:"hotel,omitempty"`
	User           *booking_models.UserSummary  `json:"user,omitempty"`
	CreatedAt      time.Time                    `json:"created_at"`
}

// NewTransaction builds a transaction with a fresh id and defaulted
// currency, method, status, gateway and reference.
func NewTransaction(bookingID, userID, hotelID uuid.UUID, amount float64) (*Transaction, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate UUID for transaction: %w", err)
	}
	return &Transaction{
		ID:             id,
		BookingID:      bookingID,
		UserID:         userID,
		HotelID:        hotelID,
		Amount:         amount,
		Currency:       DefaultCurrency,
		Method:         DefaultMethod,
		Status:         StatusCaptured,
		Reference:      utils.GenerateTransactionReference(),
		PaymentGateway: DefaultGateway,
		CreatedAt:      time.Now(),
	}, nil
}

// CreateTransaction persists a transaction and, when it is captured,
// confirms the referenced booking if it is still pending. Both writes share
// one transaction.
func CreateTransaction(ctx context.Context, db *pgxpool.Pool, txn *Transaction) (*Transaction, error) {
	logger.InfoLogger.Infof("Recording %s transaction %s for booking %s", txn.Status, txn.Reference, txn.BookingID)

	tx, err := db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO transactions (id, booking_id, user_id, hotel_id, amount, currency, method, status,
			reference, payment_gateway, card_brand, card_last4, billing_name, billing_email, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		txn.ID, txn.BookingID, txn.UserID, txn.HotelID, txn.Amount, txn.Currency,
		txn.Method, txn.Status, txn.Reference, txn.PaymentGateway, txn.CardBrand,
		txn.CardLast4, txn.BillingName, txn.BillingEmail, txn.Notes, txn.CreatedAt,
	)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to insert transaction: %v", err)
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	if txn.Status == StatusCaptured {
		if err := booking_models.ConfirmIfPending(ctx, tx, txn.BookingID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction record: %w", err)
	}

	logger.InfoLogger.Infof("Transaction %s recorded (%s %.2f %s)", txn.Reference, txn.Status, txn.Amount, txn.Currency)
	return txn, nil
}

const transactionSelect = `
	SELECT t.id, t.booking_id, t.user_id, t.hotel_id, t.amount, t.currency,
	       t.method, t.status, t.reference, t.payment_gateway, t.card_brand,
	       t.card_last4, t.billing_name, t.billing_email, t.notes, t.created_at,
	       b.status, b.check_in, b.check_out, b.total_amount,
	       h.name, h.city, u.username, u.email
	FROM transactions t
	JOIN bookings b ON b.id = t.booking_id
	JOIN hotels h ON h.id = t.hotel_id
	JOIN users u ON u.id = t.user_id`

func scanTransaction(row pgx.Row) (*Transaction, error) {
	t := &Transaction{}
	booking := BookingSummary{}
	var hotelName, hotelCity, username, email string
	err := row.Scan(
		&t.ID, &t.BookingID, &t.UserID, &t.HotelID, &t.Amount, &t.Currency,
		&t.Method, &t.Status, &t.Reference, &t.PaymentGateway, &t.CardBrand,
		&t.CardLast4, &t.BillingName, &t.BillingEmail, &t.Notes, &t.CreatedAt,
		&booking.Status, &booking.CheckIn, &booking.CheckOut, &booking.TotalAmount,
		&hotelName, &hotelCity, &username, &email,
	)
	if err != nil {
		return nil, err
	}
	booking.ID = t.BookingID
	t.Booking = &booking
	t.Hotel = &booking_models.HotelSummary{ID: t.HotelID, Name: hotelName, City: hotelCity}
	t.User = &booking_models.UserSummary{ID: t.UserID, Username: username, Email: email}
	return t, nil
}

// GetTransactionByID fetches a transaction with populated references.
func GetTransactionByID(ctx context.Context, db *pgxpool.Pool, txnID uuid.UUID) (*Transaction, error) {
	txn, err := scanTransaction(db.QueryRow(ctx, transactionSelect+` WHERE t.id = $1`, txnID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.ErrTransactionNotFound
		}
		logger.ErrorLogger.Errorf("Failed to fetch transaction %s: %v", txnID, err)
		return nil, fmt.Errorf("database error fetching transaction: %w", err)
	}
	return txn, nil
}

// ListTransactions returns transactions matching the filter, newest first.
// The filter shape and role scoping mirror the booking listing.
func ListTransactions(ctx context.Context, db *pgxpool.Pool, filter booking_models.BookingFilter) ([]Transaction, error) {
	query := transactionSelect + ` WHERE 1=1`
	args := []interface{}{}

	if filter.HotelID != nil {
		args = append(args, *filter.HotelID)
		query += fmt.Sprintf(` AND t.hotel_id = $%d`, len(args))
	}
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		query += fmt.Sprintf(` AND t.user_id = $%d`, len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(` AND t.status = $%d`, len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(` AND t.created_at >= $%d`, len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(` AND t.created_at <= $%d`, len(args))
	}
	query += ` ORDER BY t.created_at DESC`

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to list transactions: %v", err)
		return nil, fmt.Errorf("database error listing transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		transactions = append(transactions, *t)
	}
	return transactions, rows.Err()
}

// CanViewTransaction reports whether the caller may read a transaction: its
// payer, a super admin, or the admin of the charged hotel.
func CanViewTransaction(auth utils.AuthUser, t *Transaction) bool {
	if auth.SuperAdmin {
		return true
	}
	if auth.IsAdmin {
		return auth.ManagedHotel != nil && *auth.ManagedHotel == t.HotelID
	}
	return t.UserID == auth.ID
}
