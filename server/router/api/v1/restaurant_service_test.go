package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/dinedex/dinedex/internal/profile"
	storetest "github.com/dinedex/dinedex/store/test"
)

func newTestAPI(t *testing.T) (*echo.Echo, *APIV1Service) {
	ctx := context.Background()
	ts := storetest.NewTestingStore(ctx, t)
	svc := NewAPIV1Service(&profile.Profile{Mode: "dev", ImportMaxBytes: 3_000_000}, ts)

	e := echo.New()
	svc.RegisterRoutes(e.Group("/api/v1"))
	return e, svc
}

func doJSON(t *testing.T, e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCreateAndGetRestaurant(t *testing.T) {
	e, _ := newTestAPI(t)

	rec := doJSON(t, e, http.MethodPost, "/api/v1/restaurants",
		`{"name":"Mama Mia","cuisine":"italian","price":2,"rating":4}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var created Restaurant
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, "mama-mia", created.UID)
	require.Equal(t, "Mama Mia", created.Name)
	require.Equal(t, int32(2), *created.Price)

	rec = doJSON(t, e, http.MethodGet, "/api/v1/restaurants/mama-mia", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, e, http.MethodGet, "/api/v1/restaurants/no-such", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateRestaurantValidation(t *testing.T) {
	e, _ := newTestAPI(t)

	rec := doJSON(t, e, http.MethodPost, "/api/v1/restaurants", `{"name":""}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var response errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Equal(t, "name", response.Field)

	rec = doJSON(t, e, http.MethodPost, "/api/v1/restaurants", `{"name":"Over Priced","price":9}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Equal(t, "price", response.Field)
}

func TestAddBusinessHours(t *testing.T) {
	e, _ := newTestAPI(t)

	rec := doJSON(t, e, http.MethodPost, "/api/v1/restaurants", `{"name":"Night Owl"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, e, http.MethodPost, "/api/v1/restaurants/night-owl/hours",
		`{"days":[5,6],"opens":79200,"closes":3600}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var response Restaurant
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	// Two midnight-crossing days make four rows: Fri+Sat until 24:00 and
	// spills into Sat+Sun from 00:00.
	require.Len(t, response.BusinessHours, 4)

	// A second identical write collides with the existing schedule.
	rec = doJSON(t, e, http.MethodPost, "/api/v1/restaurants/night-owl/hours",
		`{"days":[5],"opens":79200,"closes":3600}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var errResponse errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResponse))
	require.Equal(t, "overlap", errResponse.Field)

	rec = doJSON(t, e, http.MethodPost, "/api/v1/restaurants/night-owl/hours",
		`{"days":[9],"opens":3600,"closes":7200}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListRestaurants(t *testing.T) {
	e, _ := newTestAPI(t)

	for _, body := range []string{
		`{"name":"Mama Mia","cuisine":"italian"}`,
		`{"name":"Luigi's Pizza","cuisine":"italian"}`,
		`{"name":"Thai Orchid","cuisine":"thai"}`,
	} {
		rec := doJSON(t, e, http.MethodPost, "/api/v1/restaurants", body)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := doJSON(t, e, http.MethodGet, "/api/v1/restaurants?cuisine=italian", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var response ListRestaurantsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Equal(t, 2, response.Total)
	require.Len(t, response.Restaurants, 2)

	rec = doJSON(t, e, http.MethodGet, "/api/v1/restaurants?page=2&pageSize=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Equal(t, 3, response.Total)
	require.Len(t, response.Restaurants, 1)

	rec = doJSON(t, e, http.MethodGet, "/api/v1/restaurants?status=sideways", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, e, http.MethodGet, "/api/v1/restaurants?page=0", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteRestaurant(t *testing.T) {
	e, _ := newTestAPI(t)

	rec := doJSON(t, e, http.MethodPost, "/api/v1/restaurants", `{"name":"Short Lived"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, e, http.MethodDelete, "/api/v1/restaurants/short-lived", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, e, http.MethodDelete, "/api/v1/restaurants/short-lived", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestImportEndpoint(t *testing.T) {
	e, _ := newTestAPI(t)

	payload := `"Joe's Diner","Mon-Wed 9 am - 5 pm"` + "\n"
	req := httptest.NewRequest(http.MethodPost, "/api/v1/restaurants/import", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, "text/csv")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var response ImportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Equal(t, 1, response.Imported)

	rec = doJSON(t, e, http.MethodGet, "/api/v1/restaurants/joes-diner", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var restaurant Restaurant
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &restaurant))
	require.Len(t, restaurant.BusinessHours, 3)
}

func TestImportEndpointPayloadTooLarge(t *testing.T) {
	ctx := context.Background()
	ts := storetest.NewTestingStore(ctx, t)

	firstRow := `"Joe's Diner","Mon-Wed 9 am - 5 pm"` + "\n"
	payload := firstRow + `"Azteca","Thu 9 am - 5 pm"` + "\n"

	// A cap that cuts the payload exactly between two rows must reject
	// the upload wholesale, not import the prefix and report success.
	svc := NewAPIV1Service(&profile.Profile{Mode: "dev", ImportMaxBytes: int64(len(firstRow))}, ts)
	e := echo.New()
	svc.RegisterRoutes(e.Group("/api/v1"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/restaurants/import", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, "text/csv")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code, rec.Body.String())

	// Nothing was committed.
	rec = doJSON(t, e, http.MethodGet, "/api/v1/restaurants", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var response ListRestaurantsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Equal(t, 0, response.Total)

	// The same payload goes through once the cap allows it in full.
	svc.Profile.ImportMaxBytes = int64(len(payload))
	req = httptest.NewRequest(http.MethodPost, "/api/v1/restaurants/import", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, "text/csv")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var importResponse ImportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &importResponse))
	require.Equal(t, 2, importResponse.Imported)
}

func TestImportEndpointRowError(t *testing.T) {
	e, _ := newTestAPI(t)

	payload := strings.Join([]string{
		`"Early Bird","Mon 6 am - 2 pm"`,
		`"Broken","sometime"`,
	}, "\n") + "\n"
	req := httptest.NewRequest(http.MethodPost, "/api/v1/restaurants/import", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, "text/csv")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var response errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.NotNil(t, response.Row)
	require.Equal(t, 1, *response.Row)
}
