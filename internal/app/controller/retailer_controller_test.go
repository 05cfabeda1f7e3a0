package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/retailhub/retailhub-backend/internal/app/model"
	"github.com/retailhub/retailhub-backend/internal/app/repository"
	"github.com/retailhub/retailhub-backend/internal/app/service"
	"github.com/retailhub/retailhub-backend/internal/db"
	apperrors "github.com/retailhub/retailhub-backend/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRetailerControllerTest(t *testing.T) (*gin.Engine, repository.RetailerRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	repo, err := repository.NewRetailerRepository(repository.Backend{
		Name: "postgres",
		DB:   testDB,
	})
	require.NoError(t, err)

	seq := 0
	clock := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	retailerService := service.NewRetailerService(repo,
		service.WithClock(func() time.Time {
			clock = clock.Add(time.Minute)
			return clock
		}),
		service.WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("r-%d", seq)
		}),
	)

	return newTestRouter(NewRetailerController(retailerService)), repo
}

func newTestRouter(ctrl *RetailerController) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/retailers", ctrl.ListRetailers)
	router.POST("/retailers", ctrl.CreateRetailer)
	router.DELETE("/retailers", ctrl.DeleteRetailer)
	router.GET("/categories", ctrl.ListCategories)
	return router
}

func doRequest(router *gin.Engine, method, target string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			_ = json.NewEncoder(&buf).Encode(b)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) apperrors.ErrorResponse {
	t.Helper()
	var body apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRetailerController_CreateRetailer_Success(t *testing.T) {
	router, repo := setupRetailerControllerTest(t)

	w := doRequest(router, http.MethodPost, "/retailers", model.RetailerInput{
		Name:     "Acme",
		Location: "NYC",
		Category: "Grocery",
		ProsCons: "fast||pricey",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var created model.Retailer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "r-1", created.ID)
	assert.Equal(t, "fast", created.Pros)
	assert.Equal(t, "pricey", created.Cons)
	assert.Equal(t, "", created.Contact)
	assert.False(t, created.CreatedAt.IsZero())

	stored, err := repo.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestRetailerController_CreateRetailer_MissingFields(t *testing.T) {
	router, repo := setupRetailerControllerTest(t)

	w := doRequest(router, http.MethodPost, "/retailers", model.RetailerInput{Name: "Acme"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, apperrors.ValidationRequired, body.Error)
	assert.Contains(t, body.Fields, "location")
	assert.Contains(t, body.Fields, "category")
	assert.NotContains(t, body.Fields, "name")

	stored, err := repo.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestRetailerController_CreateRetailer_InvalidJSON(t *testing.T) {
	router, _ := setupRetailerControllerTest(t)

	w := doRequest(router, http.MethodPost, "/retailers", `{"name":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.ValidationInvalidInput, decodeError(t, w).Error)
}

func TestRetailerController_ListRetailers(t *testing.T) {
	router, _ := setupRetailerControllerTest(t)

	w := doRequest(router, http.MethodGet, "/retailers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	for _, in := range []model.RetailerInput{
		{Name: "Acme", Location: "NYC", Category: "Grocery"},
		{Name: "Volt", Location: "Austin", Category: "Electronics"},
	} {
		require.Equal(t, http.StatusCreated, doRequest(router, http.MethodPost, "/retailers", in).Code)
	}

	w = doRequest(router, http.MethodGet, "/retailers", nil)
	var all []model.Retailer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	require.Len(t, all, 2)
	assert.Equal(t, "Acme", all[0].Name)
	assert.Equal(t, "Volt", all[1].Name)

	w = doRequest(router, http.MethodGet, "/retailers?query=ELEC", nil)
	var matched []model.Retailer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &matched))
	require.Len(t, matched, 1)
	assert.Equal(t, "Volt", matched[0].Name)
}

func TestRetailerController_ListCategories(t *testing.T) {
	router, _ := setupRetailerControllerTest(t)

	for _, in := range []model.RetailerInput{
		{Name: "Acme", Location: "NYC", Category: "Grocery"},
		{Name: "Volt", Location: "Austin", Category: "Electronics"},
		{Name: "Fresh", Location: "LA", Category: "Grocery"},
	} {
		require.Equal(t, http.StatusCreated, doRequest(router, http.MethodPost, "/retailers", in).Code)
	}

	w := doRequest(router, http.MethodGet, "/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["Grocery","Electronics"]`, w.Body.String())
}

func TestRetailerController_DeleteRetailer(t *testing.T) {
	router, repo := setupRetailerControllerTest(t)
	require.Equal(t, http.StatusCreated, doRequest(router, http.MethodPost, "/retailers",
		model.RetailerInput{Name: "Acme", Location: "NYC", Category: "Grocery"}).Code)

	t.Run("missing id", func(t *testing.T) {
		w := doRequest(router, http.MethodDelete, "/retailers", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeError(t, w).Fields, "id")
	})

	t.Run("unknown id", func(t *testing.T) {
		w := doRequest(router, http.MethodDelete, "/retailers?id=nope", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, apperrors.RetailerNotFound, decodeError(t, w).Error)

		stored, err := repo.LoadAll(context.Background())
		require.NoError(t, err)
		assert.Len(t, stored, 1)
	})

	t.Run("existing id", func(t *testing.T) {
		w := doRequest(router, http.MethodDelete, "/retailers?id=r-1", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true}`, w.Body.String())

		stored, err := repo.LoadAll(context.Background())
		require.NoError(t, err)
		assert.Empty(t, stored)
	})
}

type brokenRepository struct{ err error }

func (b brokenRepository) LoadAll(context.Context) ([]model.Retailer, error) { return nil, b.err }
func (b brokenRepository) SaveAll(context.Context, []model.Retailer) error   { return b.err }
func (b brokenRepository) Append(context.Context, model.Retailer) error      { return b.err }
func (b brokenRepository) Remove(context.Context, string) (bool, error)      { return false, b.err }

func TestRetailerController_StorageFailure(t *testing.T) {
	repo := brokenRepository{err: fmt.Errorf("failed to read store: %w", repository.ErrStoreCorrupted)}
	router := newTestRouter(NewRetailerController(service.NewRetailerService(repo)))

	tests := []struct {
		name   string
		method string
		target string
		body   interface{}
	}{
		{name: "list", method: http.MethodGet, target: "/retailers"},
		{name: "categories", method: http.MethodGet, target: "/categories"},
		{name: "create", method: http.MethodPost, target: "/retailers", body: model.RetailerInput{Name: "A", Location: "B", Category: "C"}},
		{name: "delete", method: http.MethodDelete, target: "/retailers?id=r-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, tt.method, tt.target, tt.body)
			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Equal(t, apperrors.InternalStorageError, decodeError(t, w).Error)
		})
	}
}
