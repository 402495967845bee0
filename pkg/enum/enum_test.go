package enum

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToEnum(t *testing.T) {
	type Color string

	red := New(Color("red"))
	require.Equal(t, Color("red"), red)

	v, err := ToEnum[Color]("red")
	require.NoError(t, err)
	require.Equal(t, red, v)

	_, err = ToEnum[Color]("green")
	require.Error(t, err)

	type Size string
	_, err = ToEnum[Size]("red")
	require.Error(t, err)
}
