package reconcile

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"indy-builder/core/utils"
)

// ErrInvalidKey is returned when a raw record carries neither a type id nor an item name,
// or when the type id cannot be read as an integer.
var ErrInvalidKey = errors.New("record must include type_id or item_name")

// Key is the canonical join key shared by every provider.
//
// Two keys are equal only when both the type id (including its presence) and the
// normalized name are equal. A key built from an id alone never equals a key built
// from a name alone, even when both denote the same item.
type Key struct {
	typeID int64
	hasID  bool
	name   string
}

// NewKey normalizes a raw type id and item name into a Key.
// The name is trimmed and lowercased; the id is coerced to an integer, or treated
// as absent when nil or empty.
func NewKey(rawTypeID, rawName any) (Key, error) {
	var k Key

	if !utils.IsBlank(rawTypeID) {
		id, ok := utils.ParseInt64(rawTypeID)
		if !ok {
			return Key{}, fmt.Errorf("%w: type_id %q is not an integer", ErrInvalidKey, utils.ToString(rawTypeID))
		}
		k.typeID = id
		k.hasID = true
	}

	k.name = strings.ToLower(strings.TrimSpace(utils.ToString(rawName)))

	if !k.hasID && k.name == "" {
		return Key{}, ErrInvalidKey
	}
	return k, nil
}

// MustKey is like NewKey but panics on invalid input. Intended for fixtures and tests.
func MustKey(rawTypeID, rawName any) Key {
	k, err := NewKey(rawTypeID, rawName)
	if err != nil {
		panic(err)
	}
	return k
}

// TypeID returns the numeric id and whether it is present.
func (k Key) TypeID() (int64, bool) {
	return k.typeID, k.hasID
}

// TypeIDPtr returns the numeric id as a pointer, nil when absent.
func (k Key) TypeIDPtr() *int64 {
	if !k.hasID {
		return nil
	}
	id := k.typeID
	return &id
}

// Name returns the normalized item name (may be empty).
func (k Key) Name() string {
	return k.name
}

// String returns the canonical text form "<id>|<name>", with an empty id segment when absent.
// Distinct keys always have distinct string forms.
func (k Key) String() string {
	if !k.hasID {
		return "|" + k.name
	}
	return strconv.FormatInt(k.typeID, 10) + "|" + k.name
}

// Less orders keys by name, then by id (absent ids first).
func (k Key) Less(other Key) bool {
	if k.name != other.name {
		return k.name < other.name
	}
	if k.hasID != other.hasID {
		return !k.hasID
	}
	return k.typeID < other.typeID
}
