package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKey_Normalization(t *testing.T) {
	tests := []struct {
		name    string
		rawID   any
		rawName any
		wantID  int64
		hasID   bool
		want    string
	}{
		{"IntAndName", 34, "Tritanium", 34, true, "tritanium"},
		{"StringID", "34", "  TRITANIUM ", 34, true, "tritanium"},
		{"FloatID", 34.0, "Tritanium", 34, true, "tritanium"},
		{"JSONNumberString", "34.0", nil, 34, true, ""},
		{"NameOnly", nil, "Pyerite", 0, false, "pyerite"},
		{"EmptyIDString", "", "Pyerite", 0, false, "pyerite"},
		{"IDOnly", int64(35), "", 35, true, ""},
		{"NilPointerID", (*int64)(nil), "Mexallon", 0, false, "mexallon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := NewKey(tt.rawID, tt.rawName)
			require.NoError(t, err)

			id, ok := key.TypeID()
			assert.Equal(t, tt.hasID, ok)
			assert.Equal(t, tt.wantID, id)
			assert.Equal(t, tt.want, key.Name())
		})
	}
}

func TestNewKey_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		rawID   any
		rawName any
	}{
		{"BothNil", nil, nil},
		{"BothEmpty", "", "   "},
		{"NonNumericID", "abc", "Tritanium"},
		{"FractionalID", 34.5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewKey(tt.rawID, tt.rawName)
			assert.ErrorIs(t, err, ErrInvalidKey)
		})
	}
}

func TestKey_Equality(t *testing.T) {
	assert.Equal(t, MustKey("34", " Tritanium"), MustKey(34, "tritanium "))
	assert.NotEqual(t, MustKey(34, ""), MustKey(nil, "tritanium"))
	assert.NotEqual(t, MustKey(34, "tritanium"), MustKey(nil, "tritanium"))
	assert.NotEqual(t, MustKey(0, "x"), MustKey(nil, "x"))
}

func TestKey_String(t *testing.T) {
	assert.Equal(t, "34|tritanium", MustKey(34, "Tritanium").String())
	assert.Equal(t, "|pyerite", MustKey(nil, "Pyerite").String())
	assert.Equal(t, "35|", MustKey(35, nil).String())
}

func TestKey_TypeIDPtr(t *testing.T) {
	assert.Nil(t, MustKey(nil, "x").TypeIDPtr())
	ptr := MustKey(7, "").TypeIDPtr()
	require.NotNil(t, ptr)
	assert.Equal(t, int64(7), *ptr)
}

func TestMustKey_Panics(t *testing.T) {
	assert.Panics(t, func() { MustKey(nil, "") })
}
