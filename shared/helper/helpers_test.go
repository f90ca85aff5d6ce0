package helper_test

import (
	"errors"
	"testing"

	"github.com/on-the-ground/composable_ive_go/shared/helper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTypedValueOf(t *testing.T) {
	v, err := helper.GetTypedValueOf[int](func() (any, error) { return 3, nil })
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	_, err = helper.GetTypedValueOf[string](func() (any, error) { return 3, nil })
	assert.ErrorContains(t, err, "unexpected type: int")

	errBoom := errors.New("boom")
	_, err = helper.GetTypedValueOf[int](func() (any, error) { return nil, errBoom })
	assert.ErrorIs(t, err, errBoom)
}

func TestMustGetTypedValue_Panics(t *testing.T) {
	assert.Panics(t, func() {
		helper.MustGetTypedValue[int](func() (any, error) { return "x", nil })
	})
}
