package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrUpstream", ErrUpstream},
		{"ErrInvalidLocation", ErrInvalidLocation},
		{"ErrEventNotFound", ErrEventNotFound},
		{"ErrParticipantNotFound", ErrParticipantNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestNotFoundKinds(t *testing.T) {
	assert.ErrorIs(t, ErrEventNotFound, ErrNotFound)
	assert.ErrorIs(t, ErrParticipantNotFound, ErrNotFound)
	assert.False(t, errors.Is(ErrEventNotFound, ErrParticipantNotFound))
	assert.Equal(t, "event not found", ErrEventNotFound.Error())
}

func TestError_MatchesKind(t *testing.T) {
	err := NewError(ErrEventNotFound, "Evento %s non trovato.", "abc")

	assert.Equal(t, "Evento abc non trovato.", err.Error())
	assert.ErrorIs(t, err, ErrEventNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, errors.Is(err, ErrInvalidInput))
}

func TestError_KeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := UpstreamError(cause, "Errore di rete verso NWS: %v.", cause)

	assert.ErrorIs(t, err, ErrUpstream)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestError_WrappedByFmt(t *testing.T) {
	err := fmt.Errorf("getting forecast: %w", InvalidLocationError(nil, "nessun endpoint"))

	assert.ErrorIs(t, err, ErrInvalidLocation)
	assert.Equal(t, "nessun endpoint", Message(err))
}

func TestValidationError(t *testing.T) {
	err := ValidationError("importo %d non valido", -1)

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, "importo -1 non valido", err.Error())
}

func TestMessage_PlainError(t *testing.T) {
	assert.Equal(t, "boom", Message(errors.New("boom")))
}
