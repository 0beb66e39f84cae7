package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRecoverable(t *testing.T) {
	assert.True(t, IsRecoverable(Validationf("bad value")))
	assert.True(t, IsRecoverable(Authorizationf("not the owner")))
	assert.True(t, IsRecoverable(&MalformedPayloadError{Reason: "not json"}))

	// Wrapping keeps the classification.
	assert.True(t, IsRecoverable(fmt.Errorf("applying event: %w", Validationf("bad value"))))

	assert.False(t, IsRecoverable(errors.New("connection reset")))
	assert.False(t, IsRecoverable(nil))
}

func TestMalformedPayloadErrorUnwrap(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := &MalformedPayloadError{Reason: "invalid metadata json", Cause: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "invalid metadata json")
	assert.Contains(t, err.Error(), cause.Error())
}

func TestNormalizeWallet(t *testing.T) {
	checksummed := "0x52908400098527886E0F7030069857D2E4169EE7"
	lower := "0x52908400098527886e0f7030069857d2e4169ee7"

	assert.Equal(t, lower, NormalizeWallet(checksummed))
	assert.Equal(t, lower, NormalizeWallet(lower))
	assert.Equal(t, NormalizeWallet(checksummed), NormalizeWallet(lower))

	// Non-hex identities are lowercased as-is.
	assert.Equal(t, "tz1abc", NormalizeWallet("TZ1abc"))
}

func TestValidGenre(t *testing.T) {
	assert.True(t, ValidGenre("Electronic"))
	assert.True(t, ValidGenre("Hip-Hop/Rap"))
	assert.False(t, ValidGenre("Not A Genre"))
	assert.False(t, ValidGenre(""))
}

func TestValidMood(t *testing.T) {
	assert.True(t, ValidMood("Energizing"))
	assert.False(t, ValidMood("Not A Mood"))
}

func TestValidHandle(t *testing.T) {
	assert.True(t, ValidHandle("alice"))
	assert.True(t, ValidHandle("alice_01.b"))
	assert.False(t, ValidHandle(""))
	assert.False(t, ValidHandle("has space"))
	assert.False(t, ValidHandle("emoji🎵"))
	assert.False(t, ValidHandle("this_handle_is_way_too_long_to_register"))
}

func TestReservedHandle(t *testing.T) {
	assert.True(t, ReservedHandle("audius"))
	assert.True(t, ReservedHandle("AUDIUS"))
	assert.False(t, ReservedHandle("alice"))

	// Genre and mood words are unclaimable too.
	assert.True(t, ReservedHandle("pop"))
	assert.True(t, ReservedHandle("hip-hop/rap"))
	assert.True(t, ReservedHandle("cool"))
	assert.True(t, ReservedHandle("Energizing"))
}
