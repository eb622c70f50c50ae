package providers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusd/internal/providers"
)

func TestRouterProviderMethodPatterns(t *testing.T) {
	router := providers.NewRouterProvider()
	noop := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	router.Get("/api/courses", noop)
	router.Post("/api/courses", noop)
	router.Put("/api/courses/{id}", noop)
	router.Delete("/api/courses/{id}", noop)

	routes := router.GetRoutes()
	require.Len(t, routes, 4)
	assert.Equal(t, "GET /api/courses", routes[0].Url)
	assert.Equal(t, "POST /api/courses", routes[1].Url)
	assert.Equal(t, "PUT /api/courses/{id}", routes[2].Url)
	assert.Equal(t, "DELETE /api/courses/{id}", routes[3].Url)
}
