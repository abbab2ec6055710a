package shipment

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/shipledger/internal/common"
)

func TestParseType(t *testing.T) {
	got, err := ParseType(" inbound ")
	require.NoError(t, err)
	require.Equal(t, Inbound, got)

	_, err = ParseType("Sideways")
	require.ErrorIs(t, err, ErrInvalidType)
}

func TestValidateSubtype(t *testing.T) {
	require.NoError(t, ValidateSubtype(Inbound, "FC to FTWZ BOE"))
	require.NoError(t, ValidateSubtype(Outbound, "Intra SEZ"))

	err := ValidateSubtype(Inbound, "Intra SEZ")
	require.ErrorIs(t, err, ErrInvalidSubtype)
	var fieldErr *common.FieldError
	require.True(t, errors.As(err, &fieldErr))
	require.Equal(t, "subtype", fieldErr.Field)
	require.Equal(t, "Intra SEZ", fieldErr.Value)
}

func TestSubtypesReturnsCopy(t *testing.T) {
	list := Subtypes(Outbound)
	list[0] = "mutated"
	require.Equal(t, "FTWZ to DTA", Subtypes(Outbound)[0])
	require.Empty(t, Subtypes(Type("Sideways")))
}
