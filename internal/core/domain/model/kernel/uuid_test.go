package kernel_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID(t *testing.T) {
	t.Run("mints a valid, non-nil id", func(t *testing.T) {
		id := kernel.NewUUID()

		assert.NoError(t, id.Validate())
		assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", id.String())
	})

	t.Run("successive ids are distinct", func(t *testing.T) {
		assert.False(t, kernel.NewUUID().IsEqual(kernel.NewUUID()))
	})
}

func TestUUIDFromString(t *testing.T) {
	canonical := "550e8400-e29b-41d4-a716-446655440000"

	t.Run("parses the canonical form", func(t *testing.T) {
		id, err := kernel.UUIDFromString(canonical)

		require.NoError(t, err)
		assert.Equal(t, canonical, id.String())
	})

	t.Run("accepts the variant encodings clients send", func(t *testing.T) {
		variants := []string{
			"{550e8400-e29b-41d4-a716-446655440000}",
			"urn:uuid:550e8400-e29b-41d4-a716-446655440000",
			"550e8400e29b41d4a716446655440000",
		}

		for _, input := range variants {
			id, err := kernel.UUIDFromString(input)
			require.NoError(t, err, input)
			assert.Equal(t, canonical, id.String())
		}
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		malformed := []string{
			"",
			"not-a-uuid",
			"550e8400-e29b-41d4-a716",
			"550e8400-e29b-41d4-a716-446655440000-extra",
			"zzze8400-e29b-41d4-a716-446655440000",
		}

		for _, input := range malformed {
			_, err := kernel.UUIDFromString(input)
			require.Error(t, err, input)
			assert.Contains(t, err.Error(), "invalid UUID format")
		}
	})
}

func TestUUIDFromBytes(t *testing.T) {
	t.Run("round trips through Bytes the way repositories do", func(t *testing.T) {
		original := kernel.NewUUID()
		raw := original.Bytes()

		restored, err := kernel.UUIDFromBytes(raw[:])

		require.NoError(t, err)
		assert.True(t, original.IsEqual(restored))
	})

	t.Run("rejects truncated input", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{0x55, 0x0e, 0x84})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid UUID format")
	})

	t.Run("rejects the nil uuid", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(make([]byte, 16))

		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, err)
	})
}

func TestUUID_IsEqual(t *testing.T) {
	t.Run("same value compares equal both ways", func(t *testing.T) {
		id1, _ := kernel.UUIDFromString("550e8400-e29b-41d4-a716-446655440000")
		id2, _ := kernel.UUIDFromString("550e8400-e29b-41d4-a716-446655440000")

		assert.True(t, id1.IsEqual(id2))
		assert.True(t, id2.IsEqual(id1))
	})

	t.Run("different values compare unequal", func(t *testing.T) {
		assert.False(t, kernel.NewUUID().IsEqual(kernel.NewUUID()))
	})

	t.Run("zero values compare equal to each other only", func(t *testing.T) {
		var zero1, zero2 kernel.UUID

		assert.True(t, zero1.IsEqual(zero2))
		assert.False(t, zero1.IsEqual(kernel.NewUUID()))
	})
}

func TestUUID_Validate(t *testing.T) {
	t.Run("a minted id validates", func(t *testing.T) {
		assert.NoError(t, kernel.NewUUID().Validate())
	})

	t.Run("the zero value does not", func(t *testing.T) {
		var id kernel.UUID
		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, id.Validate())
	})

	t.Run("a parsed nil uuid does not", func(t *testing.T) {
		id, _ := kernel.UUIDFromString("00000000-0000-0000-0000-000000000000")
		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, id.Validate())
	})
}

func TestUUID_Bytes(t *testing.T) {
	t.Run("exposes the underlying uuid.UUID", func(t *testing.T) {
		id := kernel.NewUUID()
		raw := id.Bytes()

		assert.IsType(t, uuid.UUID{}, raw)
		assert.Equal(t, id.String(), raw.String())
	})

	t.Run("returned copy is detached from the original", func(t *testing.T) {
		id := kernel.NewUUID()
		before := id.String()

		raw := id.Bytes()
		for i := range raw {
			raw[i] = 0xFF
		}

		assert.Equal(t, before, id.String())
	})
}
