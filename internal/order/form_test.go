package order

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormBlurAndInput(t *testing.T) {
	f := NewForm()

	t.Run("input before blur does not validate", func(t *testing.T) {
		ok, msg := f.Input(FieldPhone, "1")
		require.True(t, ok)
		require.Empty(t, msg)
		require.Empty(t, f.Message(FieldPhone))
	})

	t.Run("blur marks invalid", func(t *testing.T) {
		ok, msg := f.Blur(FieldPhone, "1")
		require.False(t, ok)
		require.Equal(t, "Please enter a valid phone number", msg)
		require.Equal(t, msg, f.Message(FieldPhone))
	})

	t.Run("input re-validates while invalid", func(t *testing.T) {
		ok, _ := f.Input(FieldPhone, "555-123")
		require.False(t, ok)

		ok, msg := f.Input(FieldPhone, "555-123-4567")
		require.True(t, ok)
		require.Empty(t, msg)
		require.Empty(t, f.Message(FieldPhone))
	})

	t.Run("once valid, input stops validating", func(t *testing.T) {
		ok, _ := f.Input(FieldPhone, "x")
		require.True(t, ok)
	})
}

func TestFormSubmitMarksFields(t *testing.T) {
	f := NewForm()
	v := f.Submit(CustomerInfo{Name: "Al", Email: "bad", Phone: "555-123-4567", Address: "12 Baker Street"})
	require.False(t, v.Valid)
	require.NotEmpty(t, f.Message(FieldEmail))
	require.Empty(t, f.Message(FieldName))

	ok, _ := f.Input(FieldEmail, "a@b.com")
	require.True(t, ok)
	require.Empty(t, f.Message(FieldEmail))
}
