package shipment

import (
	"errors"
	"strings"

	"github.com/noah-isme/shipledger/internal/common"
)

// Type is the shipment direction.
type Type string

const (
	Inbound  Type = "Inbound"
	Outbound Type = "Outbound"
)

var (
	// ErrInvalidType is returned for directions other than Inbound and Outbound.
	ErrInvalidType = errors.New("invalid shipment type")
	// ErrInvalidSubtype is returned when the subtype does not belong to the shipment type.
	ErrInvalidSubtype = errors.New("invalid shipment subtype")
	// ErrInvalidDimensions is returned for negative volume or missing ODC dimensions.
	ErrInvalidDimensions = errors.New("invalid shipment dimensions")
	// ErrCustomerNotFound is returned when the referenced customer does not exist.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrNotFound is returned when the shipment id is unknown.
	ErrNotFound = errors.New("shipment not found")
)

var subtypes = map[Type][]string{
	Inbound:  {"FC to FTWZ BOE", "DTA to FTWZ"},
	Outbound: {"FTWZ to DTA", "FTWZ to FC", "Intra SEZ"},
}

// Types lists the shipment types in display order.
func Types() []Type { return []Type{Inbound, Outbound} }

// Subtypes returns a copy of the subtypes valid for t.
func Subtypes(t Type) []string {
	return append([]string(nil), subtypes[t]...)
}

// ParseType matches a shipment type case-insensitively.
func ParseType(s string) (Type, error) {
	for _, t := range Types() {
		if strings.EqualFold(strings.TrimSpace(s), string(t)) {
			return t, nil
		}
	}
	return "", common.NewFieldError(ErrInvalidType, "type", s)
}

// ValidateSubtype checks that subtype belongs to t.
func ValidateSubtype(t Type, subtype string) error {
	valid, ok := subtypes[t]
	if !ok {
		return common.NewFieldError(ErrInvalidType, "type", t)
	}
	for _, s := range valid {
		if s == subtype {
			return nil
		}
	}
	return common.NewFieldError(ErrInvalidSubtype, "subtype", subtype)
}
