package transaction_controller

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stayvista/stayvista/logger"
	"github.com/stayvista/stayvista/models/booking_models"
	"github.com/stayvista/stayvista/models/transaction_models"
	"github.com/stayvista/stayvista/utils"
	"github.com/stayvista/stayvista/utils/mail"
)

// TransactionController records payments against bookings. Payments run
// through the in-house mock gateway; no card data beyond the last four digits
// ever touches the database.
type TransactionController struct {
	DB *pgxpool.Pool
}

// NewTransactionController creates a new instance of TransactionController.
func NewTransactionController(db *pgxpool.Pool) *TransactionController {
	return &TransactionController{DB: db}
}

type CreateTransactionRequest struct {
	BookingID    string   `json:"bookingId" binding:"required"`
	Amount       *float64 `json:"amount"`
	Currency     string   `json:"currency"`
	Method       string   `json:"method"`
	Status       string   `json:"status"`
	CardBrand    string   `json:"cardBrand"`
	CardNumber   string   `json:"cardNumber"`
	BillingName  string   `json:"billingName"`
	BillingEmail string   `json:"billingEmail"`
	Notes        string   `json:"notes"`
}

// CreateTransaction records a payment manually. Admin tooling uses this for
// offline settlements and refunds; the public checkout path is Pay.
func (tc *TransactionController) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnLogger.Warnf("Invalid create transaction request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "error": "Invalid request format", "details": err.Error()})
		return
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_ID", "error": "Invalid booking id"})
		return
	}
	if req.Status != "" && !transaction_models.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_STATUS", "error": "Unknown transaction status"})
		return
	}
	if req.Method != "" && !transaction_models.ValidMethod(req.Method) {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_METHOD", "error": "Unknown payment method"})
		return
	}

	booking, err := booking_models.GetBookingByID(c.Request.Context(), tc.DB, bookingID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	amount := booking.TotalAmount
	if req.Amount != nil {
		amount = *req.Amount
	}

	txn, err := transaction_models.NewTransaction(booking.ID, booking.UserID, booking.HotelID, amount)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if req.Currency != "" {
		txn.Currency = req.Currency
	}
	if req.Method != "" {
		txn.Method = req.Method
	}
	if req.Status != "" {
		txn.Status = req.Status
	}
	txn.CardBrand = req.CardBrand
	txn.CardLast4 = utils.CardLast4(req.CardNumber)
	txn.BillingName = req.BillingName
	txn.BillingEmail = req.BillingEmail
	txn.Notes = req.Notes

	created, err := transaction_models.CreateTransaction(c.Request.Context(), tc.DB, txn)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

type PayRequest struct {
	BookingID   string `json:"bookingId" binding:"required"`
	CardNumber  string `json:"cardNumber"`
	CardBrand   string `json:"cardBrand"`
	HolderName  string `json:"holderName"`
	Email       string `json:"email"`
	RedirectURL string `json:"redirectUrl"`
}

// Pay runs the mock checkout for a booking: the charge always succeeds for
// the booking's full amount, the booking is confirmed if still pending, and a
// receipt email goes out best-effort.
func (tc *TransactionController) Pay(c *gin.Context) {
	auth, err := utils.GetAuthUser(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var req PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnLogger.Warnf("Invalid pay request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "error": "Invalid request format", "details": err.Error()})
		return
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_ID", "error": "Invalid booking id"})
		return
	}

	booking, err := booking_models.GetBookingByID(c.Request.Context(), tc.DB, bookingID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if !booking_models.CanViewBooking(auth, booking) {
		utils.RespondError(c, utils.ErrForbidden)
		return
	}

	txn, err := transaction_models.NewTransaction(booking.ID, booking.UserID, booking.HotelID, booking.TotalAmount)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	txn.Status = transaction_models.StatusCaptured
	txn.Method = "card"
	txn.CardBrand = req.CardBrand
	txn.CardLast4 = utils.CardLast4(req.CardNumber)
	txn.BillingName = req.HolderName
	if txn.BillingName == "" && booking.User != nil {
		txn.BillingName = booking.User.Username
	}
	txn.BillingEmail = req.Email
	if txn.BillingEmail == "" && booking.User != nil {
		txn.BillingEmail = booking.User.Email
	}

	created, err := transaction_models.CreateTransaction(c.Request.Context(), tc.DB, txn)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	if created.BillingEmail != "" {
		hotelName := ""
		if booking.Hotel != nil {
			hotelName = booking.Hotel.Name
		}
		receipt := mail.ReceiptData{
			BillingName: created.BillingName,
			HotelName:   hotelName,
			Reference:   created.Reference,
			Amount:      created.Amount,
			Currency:    created.Currency,
			CheckIn:     booking.CheckIn.Format("2006-01-02"),
			CheckOut:    booking.CheckOut.Format("2006-01-02"),
		}
		go func(email string, data mail.ReceiptData) {
			if err := mail.SendPaymentReceipt(email, data); err != nil {
				logger.WarnLogger.Warnf("Receipt email for %s not sent: %v", data.Reference, err)
			}
		}(created.BillingEmail, receipt)
	}

	redirectURL := req.RedirectURL
	if redirectURL == "" {
		redirectURL = os.Getenv("PAYMENT_REDIRECT_URL")
	}

	c.JSON(http.StatusCreated, gin.H{
		"transaction": created,
		"redirectUrl": redirectURL,
		"paidAt":      time.Now().UTC(),
	})
}

// GetTransaction fetches one transaction. The payer, a super admin, or the
// charged hotel's admin may read it.
func (tc *TransactionController) GetTransaction(c *gin.Context) {
	auth, err := utils.GetAuthUser(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	txnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_ID", "error": "Invalid transaction id"})
		return
	}

	txn, err := transaction_models.GetTransactionByID(c.Request.Context(), tc.DB, txnID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if !transaction_models.CanViewTransaction(auth, txn) {
		utils.RespondError(c, utils.ErrForbidden)
		return
	}
	c.JSON(http.StatusOK, txn)
}

// GetTransactions lists transactions, scoped like the booking listing and
// narrowed by the same query filters.
func (tc *TransactionController) GetTransactions(c *gin.Context) {
	auth, err := utils.GetAuthUser(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	filter := booking_models.BookingFilter{Status: c.Query("status")}
	if hotelID := c.Query("hotelId"); hotelID != "" {
		if id, err := uuid.Parse(hotelID); err == nil {
			filter.HotelID = &id
		}
	}
	if userID := c.Query("userId"); userID != "" {
		if id, err := uuid.Parse(userID); err == nil {
			filter.UserID = &id
		}
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			filter.From = &t
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			filter.To = &t
		}
	}

	filter, err = booking_models.ScopeFilter(auth, filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	transactions, err := transaction_models.ListTransactions(c.Request.Context(), tc.DB, filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, transactions)
}
