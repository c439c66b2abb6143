package utils

import (
	"crypto/rand"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/stayvista/stayvista/config"
)

func init() {
	config.LoadEnv()
}

func GetJWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		fmt.Println("WARNING: JWT_SECRET environment variable not set.")
		return []byte("default-insecure-secret-only-for-development")
	}
	return []byte(secret)
}

const referenceChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateTransactionReference builds a human-readable payment reference like
// STAY-LX2K91F-A3B7CQ. The timestamp part keeps references roughly sortable,
// the random tail uses crypto/rand.
func GenerateTransactionReference() string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))

	bytes := make([]byte, 6)
	if _, err := rand.Read(bytes); err != nil {
		log.Println("Error generating transaction reference:", err)
		return fmt.Sprintf("STAY-%s-000000", ts)
	}
	for i := range bytes {
		bytes[i] = referenceChars[bytes[i]%byte(len(referenceChars))]
	}
	return fmt.Sprintf("STAY-%s-%s", ts, string(bytes))
}

// CardLast4 reduces a card number to its last four digits. The full number is
// never persisted.
func CardLast4(cardNumber string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, cardNumber)

	if len(digits) < 4 {
		return ""
	}
	return digits[len(digits)-4:]
}
