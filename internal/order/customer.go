package order

import (
	"errors"
	"strings"
)

var ErrMissingIdentity = errors.New("customer name, surname and phone are required")

// Customer identifies who the batch belongs to. Address is optional; the
// other fields key the server-side directory layout and must be present.
type Customer struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

func (c Customer) Validate() error {
	if strings.TrimSpace(c.Name) == "" ||
		strings.TrimSpace(c.Surname) == "" ||
		strings.TrimSpace(c.Phone) == "" {
		return ErrMissingIdentity
	}
	return nil
}
