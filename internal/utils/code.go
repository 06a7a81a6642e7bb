package utils

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateConfirmationCode returns the 3-digit check-in secret shared with
// participants, drawn uniformly from [100, 999].
func GenerateConfirmationCode() string {
	src := rand.NewSource(time.Now().UnixNano())
	r := rand.New(src)
	return fmt.Sprintf("%d", 100+r.Intn(900))
}
