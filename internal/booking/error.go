package booking

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrNextID          = errors.New("get next id from generator")
	ErrMalformedRecord = errors.New("malformed stored record")
	ErrUnknownStatus   = errors.New("unknown booking status")
	ErrInvalidDate     = errors.New("invalid calendar date")
)

type AvailabilityError struct {
	errors []string
}

func NewAvailabilityError() *AvailabilityError {
	//nolint:exhaustruct
	return &AvailabilityError{}
}

func IsAvailabilityError(err error) *AvailabilityError {
	if err == nil {
		return nil
	}

	var availabilityError *AvailabilityError

	if errors.As(err, &availabilityError) {
		return availabilityError
	}

	return nil
}

func (e *AvailabilityError) AddConflict(roomID string, existing Booking) {
	e.errors = append(e.errors, fmt.Sprintf(
		"room '%v' is already booked from %v to %v",
		roomID,
		existing.CheckIn,
		existing.CheckOut,
	))
}

func (e *AvailabilityError) AddClosedRoom(roomID string) {
	e.errors = append(e.errors, fmt.Sprintf("room '%v' is not open for booking", roomID))
}

func (e *AvailabilityError) Error() string {
	return fmt.Sprintf("%+v", e.errors)
}

func (e *AvailabilityError) Fields() []string {
	return e.errors
}

func (e *AvailabilityError) ConflictsCount() int {
	return len(e.errors)
}

type InputError struct {
	fields map[string][]string
}

func NewInputError() *InputError {
	return &InputError{
		fields: make(map[string][]string),
	}
}

func IsInputError(err error) *InputError {
	if err == nil {
		return nil
	}

	var inputError *InputError

	if errors.As(err, &inputError) {
		return inputError
	}

	return nil
}

func (ie *InputError) FieldsCount() int {
	return len(ie.fields)
}

func (ie *InputError) AddError(field, msg string) {
	ie.fields[field] = append(ie.fields[field], msg)
}

func (ie *InputError) Has(field string) bool {
	return len(ie.fields[field]) > 0
}

func (ie *InputError) Error() string {
	keys := make([]string, 0, len(ie.fields))
	for k := range ie.fields {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %v", k, ie.fields[k]))
	}

	return fmt.Sprintf("%+v", parts)
}

func (ie *InputError) Fields() map[string][]string {
	return ie.fields
}
