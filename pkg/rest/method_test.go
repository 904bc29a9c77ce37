package rest

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMethodMapping(t *testing.T) {
	cases := []struct {
		m    Method
		want string
	}{
		{MethodGet, http.MethodGet},
		{MethodPost, http.MethodPost},
		{MethodDelete, http.MethodDelete},
		{MethodPut, http.MethodPut},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.m.HTTPMethod())
		assert.Equal(t, tc.want, tc.m.String())
	}

	assert.Equal(t, "", Method(42).HTTPMethod())
	assert.Equal(t, "Method(42)", Method(42).String())
}
