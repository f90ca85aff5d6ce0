package navigationitem_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/on-the-ground/composable_ive_go/features/navigationitem"
	"github.com/on-the-ground/composable_ive_go/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestView_Render(t *testing.T) {
	s, closeStore := store.New(context.Background(), navigationitem.State{}, navigationitem.Reducer())
	defer closeStore()

	var out bytes.Buffer
	require.NoError(t, navigationitem.NewView("Lorem Ipsum", s).Render(&out))
	assert.Equal(t, "(globe) Lorem Ipsum\n", out.String())
	assert.Equal(t, navigationitem.State{}, s.State())
}
