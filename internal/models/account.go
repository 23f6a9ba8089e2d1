package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrValidation is returned when an incoming account payload is malformed
// or incomplete. Handlers translate it to a 400 response.
var ErrValidation = errors.New("invalid account data")

type Account struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Address     string  `json:"address"`
	PhoneNumber *string `json:"phone_number"`
	DateJoined  Date    `json:"date_joined"`
}

// accountPayload mirrors the external JSON shape with pointer fields so
// that a missing key can be told apart from a zero value.
type accountPayload struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	Address     *string `json:"address"`
	PhoneNumber *string `json:"phone_number"`
	DateJoined  *string `json:"date_joined"`
}

// Deserialize populates the account's fields from a JSON object.
// name, email and address are required; phone_number and date_joined are
// optional and keep their current values when absent, so an account loaded
// from the store can be updated in place from a partial body. The ID is
// never read from the payload.
func (a *Account) Deserialize(data []byte) error {
	var payload accountPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return fmt.Errorf("%w: invalid type for attribute [%s]", ErrValidation, typeErr.Field)
		}
		return fmt.Errorf("%w: body could not be parsed as JSON", ErrValidation)
	}

	if payload.Name == nil {
		return fmt.Errorf("%w: missing required attribute [name]", ErrValidation)
	}
	if payload.Email == nil {
		return fmt.Errorf("%w: missing required attribute [email]", ErrValidation)
	}
	if payload.Address == nil {
		return fmt.Errorf("%w: missing required attribute [address]", ErrValidation)
	}

	if payload.DateJoined != nil {
		joined, err := ParseDate(*payload.DateJoined)
		if err != nil {
			return fmt.Errorf("%w: attribute [date_joined] is not a valid ISO date", ErrValidation)
		}
		a.DateJoined = joined
	}

	a.Name = *payload.Name
	a.Email = *payload.Email
	a.Address = *payload.Address
	if payload.PhoneNumber != nil {
		a.PhoneNumber = payload.PhoneNumber
	}
	return nil
}

// Serialize renders the account as its external JSON representation.
func (a *Account) Serialize() ([]byte, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize account: %w", err)
	}
	return data, nil
}
