package order

import (
	"fmt"
	"net/mail"
	"strings"

	"fooddelivery/internal/pkg/errs"
)

// Contact is a snapshot of how to reach a party at the time it was taken.
// Every field is optional; the zero value is an empty contact.
type Contact struct {
	name  string
	email string
	phone string
}

// NewContact trims its inputs and checks the email address when present.
func NewContact(name, email, phone string) (Contact, error) {
	c := Contact{
		name:  strings.TrimSpace(name),
		email: strings.TrimSpace(email),
		phone: strings.TrimSpace(phone),
	}

	if c.email != "" {
		if _, err := mail.ParseAddress(c.email); err != nil {
			return Contact{}, errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q: %w", c.email, err))
		}
	}

	return c, nil
}

func (c Contact) Name() string {
	return c.name
}

func (c Contact) Email() string {
	return c.email
}

func (c Contact) Phone() string {
	return c.phone
}

func (c Contact) IsEmpty() bool {
	return c == Contact{}
}
