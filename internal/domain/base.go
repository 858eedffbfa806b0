package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrRequired is wrapped by Validate when a mandatory field is blank.
var ErrRequired = errors.New("is required")

// Base holds the identity and timestamps every stored document carries.
// Stores assign all three; callers never set them.
type Base struct {
	ID        string    `json:"id" bson:"_id"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// Meta returns the embedded metadata so generic stores can stamp it.
func (b *Base) Meta() *Base { return b }

// Caller is the authenticated identity a request acts as.
type Caller struct {
	ID   string
	Role string
}

func required(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			return fmt.Errorf("%s %w", pairs[i], ErrRequired)
		}
	}
	return nil
}
