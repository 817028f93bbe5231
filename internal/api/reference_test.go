package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipebook/backend/internal/middleware"
	"github.com/pageza/recipebook/backend/internal/mocks"
	"github.com/pageza/recipebook/backend/internal/model"
	"github.com/pageza/recipebook/backend/internal/testhelpers"
)

func setupMockRouter(svc *mocks.MockRecipeService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RequestLogger(), middleware.Recovery())
	SetupAPI(router, svc)
	return router
}

func TestListReferences(t *testing.T) {
	router := setupRecipeTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/cuisines", nil)
	require.Equal(t, http.StatusOK, w.Code)
	cuisines := decode(t, w)["cuisines"].([]interface{})
	assert.Len(t, cuisines, len(testhelpers.DefaultCuisines))
	first := cuisines[0].(map[string]interface{})
	assert.NotEmpty(t, first["_id"])
	assert.NotEmpty(t, first["name"])

	w = doJSON(t, router, http.MethodGet, "/tags", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["tags"], len(testhelpers.DefaultTags))
}

func TestHealth(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		svc := &mocks.MockRecipeService{}
		svc.On("Ping", mock.Anything).Return(nil)

		w := doJSON(t, setupMockRouter(svc), http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("store down", func(t *testing.T) {
		svc := &mocks.MockRecipeService{}
		svc.On("Ping", mock.Anything).Return(errors.New("connection refused"))

		w := doJSON(t, setupMockRouter(svc), http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.JSONEq(t, `{"status":"unhealthy","error":"store unavailable"}`, w.Body.String())
	})
}

func TestInternalErrorsAreHidden(t *testing.T) {
	svc := &mocks.MockRecipeService{}
	svc.On("ListRecipes", mock.Anything, model.RecipeFilter{Name: "soup"}).
		Return(nil, errors.New("dial tcp 10.0.0.1:27017: i/o timeout"))
	svc.On("ListTags", mock.Anything).Return(nil, errors.New("cursor killed"))

	router := setupMockRouter(svc)

	w := doJSON(t, router, http.MethodGet, "/recipes?name=soup", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())

	w = doJSON(t, router, http.MethodGet, "/tags", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())

	svc.AssertExpectations(t)
}

func TestPanicIsRecovered(t *testing.T) {
	svc := &mocks.MockRecipeService{}
	svc.On("GetRecipe", mock.Anything, "abc").Run(func(mock.Arguments) {
		panic("unexpected nil")
	})

	w := doJSON(t, setupMockRouter(svc), http.MethodGet, "/recipes/abc", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
}
