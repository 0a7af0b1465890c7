package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtraction_Validate(t *testing.T) {
	e := &Extraction{
		Document: "quote #1 for Acme",
		Annotations: []Annotation{
			{ID: "q", Start: 0, End: 8},
			{ID: "bad", Start: 5, End: 50},
			{ID: "c", Start: 13, End: 17},
			{ID: "q", Start: 9, End: 12},
			{Start: 0, End: 1},
		},
	}

	accepted, rejected := e.Validate()

	require.Len(t, accepted, 2)
	assert.Equal(t, "q", accepted[0].ID)
	assert.Equal(t, "c", accepted[1].ID)

	require.Len(t, rejected, 3)
	assert.Equal(t, "bad", rejected[0].ID)
	assert.True(t, errors.Is(rejected[0], ErrInvalidSpan))
	assert.True(t, errors.Is(rejected[1], ErrDuplicateID))
	assert.True(t, errors.Is(rejected[2], ErrMissingID))
}

func TestExtraction_Validate_Empty(t *testing.T) {
	e := &Extraction{Document: "text"}

	accepted, rejected := e.Validate()

	assert.Empty(t, accepted)
	assert.Empty(t, rejected)
}

func TestSlice_Clamps(t *testing.T) {
	runes := []rune("hello")
	assert.Equal(t, "ell", Slice(runes, 1, 4))
	assert.Equal(t, "hello", Slice(runes, -3, 40))
	assert.Equal(t, "", Slice(runes, 4, 2))
}

func TestAnchor(t *testing.T) {
	start, end, err := Anchor("Grüße from Acme Corp.", "Acme Corp.")
	require.NoError(t, err)
	assert.Equal(t, 11, start)
	assert.Equal(t, 21, end)

	_, _, err = Anchor("hello", "absent")
	assert.True(t, errors.Is(err, ErrTextNotFound))

	_, _, err = Anchor("hello", "")
	assert.True(t, errors.Is(err, ErrTextNotFound))
}
