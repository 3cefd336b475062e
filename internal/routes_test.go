package internal

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedcms/internal/controllers"
	"wedcms/internal/structures"
)

func testConfig() *structures.Config {
	return &structures.Config{}
}

// Handlers are never invoked here, so the controllers can be wired with
// nil collaborators.
func initTestRoutes(t *testing.T) []structures.Route {
	t.Helper()
	routers := InitRoutes(
		controllers.NewApiController(nil, nil, nil),
		controllers.NewBackupController(nil, nil, nil),
		controllers.NewPaymentController(nil, nil, nil, nil),
		controllers.NewUploadController(nil, nil, nil),
		controllers.NewBlessingController(nil, nil, nil),
		testConfig(),
	)
	return routers.GetRoutes()
}

func TestInitRoutes_RegistersFullSurface(t *testing.T) {
	routes := initTestRoutes(t)
	require.NotEmpty(t, routes)

	type key struct{ method, url string }
	seen := make(map[key]bool, len(routes))
	for _, route := range routes {
		k := key{route.Method, route.Url}
		assert.False(t, seen[k], "duplicate route %s %s", route.Method, route.Url)
		seen[k] = true
	}

	for _, want := range []key{
		{http.MethodGet, "/api/data"},
		{http.MethodPost, "/api/data"},
		{http.MethodGet, "/api/data/{section}"},
		{http.MethodPost, "/api/import"},
		{http.MethodPost, "/api/backup/restore/{filename}"},
		{http.MethodPut, "/api/payment/{id}"},
		{http.MethodDelete, "/api/payment/{id}"},
		{http.MethodPost, "/api/blessing/send"},
		{http.MethodGet, "/api/telegram/config"},
	} {
		assert.True(t, seen[want], "missing route %s %s", want.method, want.url)
	}
}

func TestInitRoutes_PatternsRegisterWithoutCollision(t *testing.T) {
	routes := initTestRoutes(t)

	mux := http.NewServeMux()
	assert.NotPanics(t, func() {
		for _, route := range routes {
			mux.Handle(route.Method+" "+route.Url, route.Handler)
		}
	})
}
