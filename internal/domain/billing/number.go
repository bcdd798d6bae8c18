package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewReceiptNumber generates a receipt number of the form
// "EV-<unix-millis>-<6-char-suffix>". The wall-clock prefix keeps numbers
// roughly ordered by issue time; the random suffix makes concurrent
// generation collision-resistant. A unique database index backs it up.
func NewReceiptNumber() string {
	suffix := strings.ToUpper(uuid.New().String()[:6])
	return fmt.Sprintf("EV-%d-%s", time.Now().UnixMilli(), suffix)
}
