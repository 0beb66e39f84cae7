package indexer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openaudio/discovery-indexer/internal/domain"
)

func TestParseMetadata(t *testing.T) {
	t.Run("empty payload yields nil fields", func(t *testing.T) {
		fields, err := parseMetadata(nil)
		require.NoError(t, err)
		assert.Nil(t, fields)
	})

	t.Run("object payload splits into top-level fields", func(t *testing.T) {
		fields, err := parseMetadata(json.RawMessage(`{"handle":"alice","is_mobile":true}`))
		require.NoError(t, err)
		assert.Len(t, fields, 2)
	})

	t.Run("invalid json is malformed", func(t *testing.T) {
		_, err := parseMetadata(json.RawMessage(`{"handle":`))
		require.Error(t, err)
		assert.True(t, domain.IsRecoverable(err))
	})
}

func TestFieldExtraction(t *testing.T) {
	fields, err := parseMetadata(json.RawMessage(`{
		"name": "Alice",
		"is_deactivated": false,
		"duration": 184,
		"artist_pick_track_id": null,
		"remix_of": {"tracks": [{"parent_track_id": 2000001}]}
	}`))
	require.NoError(t, err)

	t.Run("present string", func(t *testing.T) {
		v, ok, err := stringField(fields, "name")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "Alice", v)
	})

	t.Run("absent field reports not present", func(t *testing.T) {
		_, ok, err := stringField(fields, "bio")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("wrong type is malformed", func(t *testing.T) {
		_, _, err := stringField(fields, "duration")
		require.Error(t, err)
		assert.True(t, domain.IsRecoverable(err))

		_, _, err = boolField(fields, "name")
		require.Error(t, err)

		_, _, err = int32Field(fields, "name")
		require.Error(t, err)
	})

	t.Run("present bool and int", func(t *testing.T) {
		b, ok, err := boolField(fields, "is_deactivated")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.False(t, b)

		n, ok, err := int32Field(fields, "duration")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, int32(184), n)
	})

	t.Run("explicit null is present but nil", func(t *testing.T) {
		v, ok, err := nullableInt32Field(fields, "artist_pick_track_id")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Nil(t, v)
	})

	t.Run("raw document passthrough", func(t *testing.T) {
		doc, ok := jsonField(fields, "remix_of")
		assert.True(t, ok)
		assert.JSONEq(t, `{"tracks": [{"parent_track_id": 2000001}]}`, string(doc))
	})
}
