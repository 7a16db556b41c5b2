package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())

	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	group := NewDomainGroup("test", "/test").GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	NewRouter(engine, WithAPIVersion("v2")).Register(group).Setup()

	w := serve(engine, http.MethodGet, "/api/v2/test/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())

	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/api/v1/test/ping").Code)
}

func TestDomainGroup_AllMethods(t *testing.T) {
	engine := gin.New()
	ok := func(c *gin.Context) { c.String(http.StatusOK, c.Request.Method) }

	group := NewDomainGroup("items", "/items").
		GET("", ok).
		POST("", ok).
		PUT("/:id", ok).
		PATCH("/:id", ok).
		DELETE("/:id", ok).
		Handle(http.MethodOptions, "/:id", ok)
	NewRouter(engine).Register(group).Setup()

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/items"},
		{http.MethodPost, "/api/v1/items"},
		{http.MethodPut, "/api/v1/items/1"},
		{http.MethodPatch, "/api/v1/items/1"},
		{http.MethodDelete, "/api/v1/items/1"},
		{http.MethodOptions, "/api/v1/items/1"},
	} {
		w := serve(engine, tc.method, tc.path)
		assert.Equal(t, http.StatusOK, w.Code, tc.method)
		assert.Equal(t, tc.method, w.Body.String())
	}
	assert.Equal(t, "items", group.Name())
	assert.Equal(t, "/items", group.Prefix())
}

func TestDomainGroup_MiddlewareAndSubgroups(t *testing.T) {
	engine := gin.New()
	var order []string

	parent := NewDomainGroup("finance", "/finance").Use(func(c *gin.Context) {
		order = append(order, "parent")
		c.Next()
	})
	parent.Group("movements", "/movements").
		Use(func(c *gin.Context) {
			order = append(order, "child")
			c.Next()
		}).
		GET("", func(c *gin.Context) {
			order = append(order, "handler")
			c.Status(http.StatusOK)
		})
	NewRouter(engine).Register(parent).Setup()

	w := serve(engine, http.MethodGet, "/api/v1/finance/movements")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"parent", "child", "handler"}, order)
}

func TestRouterSetup_ReturnsMountedRoutes(t *testing.T) {
	engine := gin.New()
	ok := func(c *gin.Context) {}

	finance := NewDomainGroup("finance", "/finance")
	finance.Group("movements", "/movements").GET("", ok).POST("", ok)
	system := NewDomainGroup("system", "").GET("/health", ok)

	routes := NewRouter(engine).Register(finance, system).Setup()

	assert.Equal(t, []RouteInfo{
		{Group: "movements", Method: http.MethodGet, Path: "/api/v1/finance/movements"},
		{Group: "movements", Method: http.MethodPost, Path: "/api/v1/finance/movements"},
		{Group: "system", Method: http.MethodGet, Path: "/api/v1/health"},
	}, routes)

	mounted := make(map[string]bool)
	for _, r := range engine.Routes() {
		mounted[r.Method+" "+r.Path] = true
	}
	for _, r := range routes {
		assert.True(t, mounted[r.Method+" "+r.Path], r.Path)
	}
}

func TestDomainGroup_Routes(t *testing.T) {
	ok := func(c *gin.Context) {}
	group := NewDomainGroup("contracts", "/contracts").
		GET("", ok).
		POST("/:id/renew", ok)

	assert.Equal(t, []RouteInfo{
		{Group: "contracts", Method: http.MethodGet, Path: "/contracts"},
		{Group: "contracts", Method: http.MethodPost, Path: "/contracts/:id/renew"},
	}, group.Routes())
}

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "/api/v1", joinPath("/api/v1", ""))
	assert.Equal(t, "/api/v1/items", joinPath("/api/v1", "/items"))
	assert.Equal(t, "/api/v1/items/", joinPath("/api/v1", "/items/"))
	assert.Equal(t, "/items", joinPath("/", "items"))
}
