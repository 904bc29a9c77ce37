package rest

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderBuilderLastWriteWinsAndKeepsOrder(t *testing.T) {
	u, err := url.Parse("https://example.com/api/v5/public/instruments?instType=SPOT")
	require.NoError(t, err)

	b := NewHeaderBuilder(MethodGet, u, "")
	require.NoError(t, b.ContentType("text/plain"))
	require.NoError(t, b.Set("x-api-key", "first"))
	require.NoError(t, b.Set("content-type", "application/json"))
	require.NoError(t, b.Set("X-API-KEY", "second"))

	h, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, []string{"Content-Type", "X-Api-Key"}, h.Keys())
	assert.Equal(t, "application/json", h.Get("Content-Type"))
	assert.Equal(t, "second", h.Get("x-api-key"))
	assert.Equal(t, []string{"second"}, h.HTTP()["X-Api-Key"])
}

func TestHeaderBuilderExposesCallContext(t *testing.T) {
	u, err := url.Parse("https://example.com/api/v5/trade/order")
	require.NoError(t, err)

	b := NewHeaderBuilder(MethodPost, u, `{"a":1}`)
	assert.Equal(t, MethodPost, b.Method())
	assert.Equal(t, `{"a":1}`, b.Body())

	got := b.URL()
	got.Path = "/mutated"
	assert.Equal(t, "/api/v5/trade/order", b.URL().Path)
}

func TestHeaderBuilderRejectsInvalidInput(t *testing.T) {
	b := NewHeaderBuilder(MethodGet, nil, "")

	err := b.Set("bad name", "v")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrHeader))

	err = b.Set("X-Ok", "line\nbreak")
	require.Error(t, err)

	_, err = b.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad name")
}

func TestHeaderBuilderIsConsumedByBuild(t *testing.T) {
	b := NewHeaderBuilder(MethodGet, nil, "")
	require.NoError(t, b.Set("X-One", "1"))

	_, err := b.Build()
	require.NoError(t, err)

	assert.ErrorIs(t, b.Set("X-Two", "2"), ErrBuilderConsumed)
	_, err = b.Build()
	assert.ErrorIs(t, err, ErrBuilderConsumed)
}
