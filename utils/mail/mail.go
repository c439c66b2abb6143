package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"
	"strconv"

	"github.com/stayvista/stayvista/config"
	"github.com/stayvista/stayvista/logger"
	gomail "gopkg.in/gomail.v2"
)

var templates *template.Template

func init() {
	config.LoadEnv()
}

// InitTemplates parses the embedded email templates. Call once from main.
func InitTemplates(fs embed.FS) {
	var err error
	templates, err = template.ParseFS(fs, "templates/email/*.html")
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to parse email templates: %v", err)
	}
}

// ReceiptData feeds the payment receipt template.
type ReceiptData struct {
	BillingName string
	HotelName   string
	Reference   string
	Amount      float64
	Currency    string
	CheckIn     string
	CheckOut    string
}

func sendEmail(toEmail, subject, templateName string, data interface{}) error {
	if templates == nil {
		return fmt.Errorf("email templates not initialized")
	}

	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, templateName, data); err != nil {
		logger.ErrorLogger.Errorf("Failed to execute email template %s: %v", templateName, err)
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	mailer := gomail.NewMessage()
	mailer.SetHeader("From", os.Getenv("FROM_EMAIL"))
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body.String())

	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}
	dialer := gomail.NewDialer(
		os.Getenv("SMTP_HOST"),
		port,
		os.Getenv("SMTP_USER"),
		os.Getenv("SMTP_PASSWORD"),
	)

	if err := dialer.DialAndSend(mailer); err != nil {
		logger.ErrorLogger.Errorf("Failed to send email to %s: %v", toEmail, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	logger.InfoLogger.Infof("Email %q sent to %s", subject, toEmail)
	return nil
}

// SendPaymentReceipt emails a receipt after a captured payment. Callers treat
// failures as best-effort; a lost email never fails the payment.
func SendPaymentReceipt(toEmail string, data ReceiptData) error {
	subject := fmt.Sprintf("Your StayVista payment receipt (%s)", data.Reference)
	return sendEmail(toEmail, subject, "payment_receipt.html", data)
}
