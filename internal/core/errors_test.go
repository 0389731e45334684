package core

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorIs(t *testing.T) {
	tests := []struct {
		sentinel error
		kind     Kind
	}{
		{sentinel: ErrIO, kind: KindIO},
		{sentinel: ErrNotFound, kind: KindNotFound},
		{sentinel: ErrEmptyRecord, kind: KindEmptyRecord},
		{sentinel: ErrAlgorithmUnavailable, kind: KindAlgorithmUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			err := New(tt.kind, PhaseHash, "open", "/tmp/a", nil)
			assert.ErrorIs(t, err, tt.sentinel)

			wrapped := fmt.Errorf("outer: %w", err)
			assert.ErrorIs(t, wrapped, tt.sentinel)
			assert.Equal(t, tt.kind, KindOf(wrapped))
		})
	}
}

func TestErrorIsOnlyMatchesOwnKind(t *testing.T) {
	err := New(KindNotFound, PhaseRecord, "stat", "/tmp/a.checksum", nil)
	assert.NotErrorIs(t, err, ErrIO)
	assert.NotErrorIs(t, err, ErrEmptyRecord)
}

func TestErrorUnwrapsCause(t *testing.T) {
	err := New(KindIO, PhaseHash, "open", "/tmp/a", fs.ErrPermission)
	assert.ErrorIs(t, err, fs.ErrPermission)
	assert.ErrorIs(t, err, ErrIO)
}

func TestErrorMessage(t *testing.T) {
	err := New(KindIO, PhaseRecord, "rename", "/tmp/a.checksum", errors.New("disk full"))
	assert.Equal(t, "record: rename /tmp/a.checksum: disk full", err.Error())

	err = New(KindEmptyRecord, PhaseRecord, "load", "/tmp/a.checksum", nil)
	assert.Equal(t, "record: load /tmp/a.checksum: empty checksum record", err.Error())
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, Kind(0), KindOf(errors.New("plain")))
	assert.Equal(t, Phase(0), PhaseOf(errors.New("plain")))
	assert.Equal(t, "Unknown", Kind(99).String())
}

func TestPhaseOf(t *testing.T) {
	err := fmt.Errorf("ctx: %w", New(KindIO, PhaseHash, "read", "/x", nil))
	assert.Equal(t, PhaseHash, PhaseOf(err))
	assert.Equal(t, "hash", PhaseHash.String())
	assert.Equal(t, "record", PhaseRecord.String())
}
