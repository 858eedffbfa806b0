package domain

import "fmt"

func errInvalidStatus(s TodoStatus) error {
	return fmt.Errorf("status must be one of %v, got %q", TodoStatuses, string(s))
}
