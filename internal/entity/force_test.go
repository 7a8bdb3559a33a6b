package entity

import (
	"errors"
	"testing"

	"github.com/chaoscampaign/tracker/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewForce(t *testing.T) {
	f, err := NewForce(ForceInput{Name: " Wolf's Dragoons ", Warchest: 1200.7, Scale: 2})
	require.NoError(t, err)

	assert.NotEmpty(t, f.ID)
	assert.Equal(t, "Wolf's Dragoons", f.Name)
	assert.Equal(t, 1200, f.Warchest)
	assert.Equal(t, 2, f.Scale)
	assert.NotNil(t, f.Units)
	assert.Empty(t, f.Units)
	assert.NotNil(t, f.Formations)
	assert.Empty(t, f.Formations)
}

func TestNewForce_Rejects(t *testing.T) {
	tests := []struct {
		name string
		in   ForceInput
	}{
		{"blank name", ForceInput{Name: " ", Scale: 1}},
		{"negative warchest", ForceInput{Name: "A", Warchest: -1, Scale: 1}},
		{"scale zero", ForceInput{Name: "A", Scale: 0}},
		{"scale five", ForceInput{Name: "A", Scale: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, ValidateForceInput(tt.in))
			_, err := NewForce(tt.in)
			assert.True(t, errors.Is(err, ErrInvalidInput))
		})
	}
}

func TestUpdateForce(t *testing.T) {
	f, err := NewForce(ForceInput{Name: "Kell Hounds", Warchest: 500, Scale: 1})
	require.NoError(t, err)
	f.Units = append(f.Units, core.Unit{ID: "u1", Name: "Wolfhound"})

	got, err := UpdateForce(f, ForcePatch{Warchest: ptr(750.0), Scale: ptr(4)})
	require.NoError(t, err)
	assert.Equal(t, 750, got.Warchest)
	assert.Equal(t, 4, got.Scale)
	assert.Equal(t, f.Units, got.Units)

	got.Units[0].Name = "changed"
	assert.Equal(t, "Wolfhound", f.Units[0].Name)
}

func TestUpdateForce_InvalidScale(t *testing.T) {
	f, err := NewForce(ForceInput{Name: "Kell Hounds", Scale: 1})
	require.NoError(t, err)

	got, err := UpdateForce(f, ForcePatch{Name: ptr("New"), Scale: ptr(9)})
	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "scale", fe.Field)
	assert.Equal(t, "Kell Hounds", got.Name)
}
