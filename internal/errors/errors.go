package appErrors

import "fmt"

// ErrClientNotFound is a sentinel error
type ErrClientNotFound struct {
	ClientID int
}

func (e *ErrClientNotFound) Error() string {
	return fmt.Sprintf("client with ID %d not found", e.ClientID)
}

func NewClientNotFound(id int) error {
	return &ErrClientNotFound{ClientID: id}
}

// ErrTemplateNotFound signals an unknown or inactive template key
type ErrTemplateNotFound struct {
	Key string
}

func (e *ErrTemplateNotFound) Error() string {
	return fmt.Sprintf("message template %q not found", e.Key)
}

func NewTemplateNotFound(key string) error {
	return &ErrTemplateNotFound{Key: key}
}

// ErrHistoryNotFound signals a missing history entry on retry
type ErrHistoryNotFound struct {
	HistoryID int
}

func (e *ErrHistoryNotFound) Error() string {
	return fmt.Sprintf("history entry with ID %d not found", e.HistoryID)
}

func NewHistoryNotFound(id int) error {
	return &ErrHistoryNotFound{HistoryID: id}
}

// IsNotFound reports whether err is any of the not-found sentinels.
func IsNotFound(err error) bool {
	switch err.(type) {
	case *ErrClientNotFound, *ErrTemplateNotFound, *ErrHistoryNotFound:
		return true
	}
	return false
}
