package handler_test

import (
	"database/sql/driver"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ploshtadka/venue-ms/internal/auth"
	"github.com/ploshtadka/venue-ms/internal/config"
	"github.com/ploshtadka/venue-ms/internal/handler"
	"github.com/ploshtadka/venue-ms/internal/middleware"
	"github.com/ploshtadka/venue-ms/internal/repository"
	"github.com/ploshtadka/venue-ms/internal/router"
)

var venueColumnNames = []string{
	"id", "owner_id", "name", "description", "sport_types", "status", "address", "city",
	"latitude", "longitude", "price_per_hour", "currency", "capacity", "is_indoor", "has_parking",
	"has_changing_rooms", "has_showers", "has_equipment_rental", "amenities", "working_hours",
	"rating", "total_reviews", "total_bookings", "created_at", "updated_at",
}

func venueRow(id, owner uuid.UUID, status string) []driver.Value {
	now := time.Now().UTC()
	return []driver.Value{
		id.String(), owner.String(), "Tennis Club Sofia", "A great place for tennis.",
		[]byte(`["tennis"]`), status, "1 Sports Ave", "Sofia",
		nil, nil, 25.0, "EUR", 4, false, true,
		false, false, false, []byte(`[]`), []byte(`{}`),
		0.0, 0, 0, now, now,
	}
}

// newServer wires real handlers and repositories over a mocked database,
// with the identity middleware in header-only mode and caching disabled.
func newServer(t *testing.T) (*echo.Echo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	venues := repository.NewVenueRepo(db)
	images := repository.NewImageRepo(db)
	windows := repository.NewUnavailabilityRepo(db)

	e := echo.New()
	router.Register(e, router.Handlers{
		Venue:   handler.NewVenueHandler(venues, images, windows),
		Image:   handler.NewImageHandler(venues, images),
		Unavail: handler.NewUnavailabilityHandler(venues, windows),
		Health:  &handler.HealthHandler{DB: db},
	}, middleware.Identity(nil), middleware.ResponseCache(config.CacheConfig{}, nil))
	return e, mock
}

func identify(req *http.Request, id uuid.UUID, scopes string) {
	req.Header.Set(auth.HeaderUserID, id.String())
	req.Header.Set(auth.HeaderUsername, "tester")
	req.Header.Set(auth.HeaderScopes, scopes)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

const createBody = `{
	"name": "Tennis Club Sofia",
	"description": "A great place for tennis.",
	"sport_types": ["tennis"],
	"address": "1 Sports Ave",
	"city": "Sofia",
	"price_per_hour": 25,
	"capacity": 4
}`

func TestCreateVenueRequiresIdentityHeaders(t *testing.T) {
	e, mock := newServer(t)

	req := httptest.NewRequest(http.MethodPost, "/venues", strings.NewReader(createBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet()) // database untouched
}

func TestCreateVenueAsOwner(t *testing.T) {
	e, mock := newServer(t)
	caller := uuid.New()

	mock.ExpectExec("INSERT INTO venues").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM venues WHERE id").
		WillReturnRows(sqlmock.NewRows(venueColumnNames).AddRow(venueRow(uuid.New(), caller, "pending")...))

	req := httptest.NewRequest(http.MethodPost, "/venues", strings.NewReader(createBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	identify(req, caller, "venues:write")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, caller.String(), body["owner_id"])
	assert.Equal(t, "pending", body["status"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateVenueWithoutWriteScope(t *testing.T) {
	e, mock := newServer(t)

	req := httptest.NewRequest(http.MethodPost, "/venues", strings.NewReader(createBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	identify(req, uuid.New(), "venues:read")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateVenueValidation(t *testing.T) {
	e, mock := newServer(t)

	req := httptest.NewRequest(http.MethodPost, "/venues",
		strings.NewReader(`{"name": "X", "description": "meh"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	identify(req, uuid.New(), "venues:write")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "validation failed", body["error"])
	assert.NotEmpty(t, body["fields"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetVenueNotFound(t *testing.T) {
	e, mock := newServer(t)
	id := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM venues WHERE id").
		WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows(venueColumnNames))

	req := httptest.NewRequest(http.MethodGet, "/venues/"+id.String(), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetVenueGarbageIDIsNotFound(t *testing.T) {
	e, mock := newServer(t)

	req := httptest.NewRequest(http.MethodGet, "/venues/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	// Exactly one body: the handler must unwind after the 404, not fall
	// through to the lookup and append a second document.  With no
	// expectations set, a fall-through query would also surface as a
	// store failure appended here.
	assert.Equal(t, "{\"error\":\"not found\"}\n", rec.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetVenueIncludesRelations(t *testing.T) {
	e, mock := newServer(t)
	id, owner := uuid.New(), uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM venues WHERE id").
		WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows(venueColumnNames).AddRow(venueRow(id, owner, "active")...))
	mock.ExpectQuery("SELECT (.+) FROM venue_images").
		WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "venue_id", "url", "is_thumbnail", "order"}).
			AddRow(uuid.New().String(), id.String(), "https://cdn.example.com/a.jpg", true, 0))
	mock.ExpectQuery("SELECT (.+) FROM venue_unavailabilities").
		WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "venue_id", "start_datetime", "end_datetime", "reason"}))

	req := httptest.NewRequest(http.MethodGet, "/venues/"+id.String(), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Len(t, body["images"], 1)
	assert.Empty(t, body["unavailabilities"])
	assert.Equal(t, "public, max-age=60", rec.Header().Get("Cache-Control"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListVenuesEmptyPage(t *testing.T) {
	e, mock := newServer(t)

	mock.ExpectQuery("SELECT (.+) FROM venues").
		WithArgs(20, 0).
		WillReturnRows(sqlmock.NewRows(venueColumnNames))

	req := httptest.NewRequest(http.MethodGet, "/venues", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.NotNil(t, body["items"])
	assert.EqualValues(t, 1, body["page"])
	assert.EqualValues(t, 20, body["page_size"])
	assert.Equal(t, "public, max-age=30", rec.Header().Get("Cache-Control"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListVenuesRejectsBadStatusFilter(t *testing.T) {
	e, mock := newServer(t)

	req := httptest.NewRequest(http.MethodGet, "/venues?status=approved", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateVenueByStranger(t *testing.T) {
	e, mock := newServer(t)
	id, owner := uuid.New(), uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM venues WHERE id").
		WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows(venueColumnNames).AddRow(venueRow(id, owner, "active")...))

	req := httptest.NewRequest(http.MethodPatch, "/venues/"+id.String(),
		strings.NewReader(`{"name": "Hijacked"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	identify(req, uuid.New(), "venues:write") // not the owner, no admin scope
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateVenueStatusRequiresAdmin(t *testing.T) {
	e, mock := newServer(t)
	id, owner := uuid.New(), uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM venues WHERE id").
		WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows(venueColumnNames).AddRow(venueRow(id, owner, "pending")...))

	req := httptest.NewRequest(http.MethodPatch, "/venues/"+id.String()+"/status",
		strings.NewReader(`{"status": "active"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	identify(req, owner, "venues:write") // owning the venue is not enough
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateVenueStatusAsAdmin(t *testing.T) {
	e, mock := newServer(t)
	id, owner := uuid.New(), uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM venues WHERE id").
		WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows(venueColumnNames).AddRow(venueRow(id, owner, "pending")...))
	mock.ExpectExec("UPDATE venues SET status").
		WithArgs("active", id.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM venues WHERE id").
		WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows(venueColumnNames).AddRow(venueRow(id, owner, "active")...))
	mock.ExpectQuery("SELECT (.+) FROM venue_images").
		WillReturnRows(sqlmock.NewRows([]string{"id", "venue_id", "url", "is_thumbnail", "order"}))
	mock.ExpectQuery("SELECT (.+) FROM venue_unavailabilities").
		WillReturnRows(sqlmock.NewRows([]string{"id", "venue_id", "start_datetime", "end_datetime", "reason"}))

	req := httptest.NewRequest(http.MethodPatch, "/venues/"+id.String()+"/status",
		strings.NewReader(`{"status": "active"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	identify(req, uuid.New(), "admin:venues")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "active", decode(t, rec)["status"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteVenueAsOwner(t *testing.T) {
	e, mock := newServer(t)
	id, owner := uuid.New(), uuid.New()

	mock.ExpectQuery("SELECT owner_id FROM venues").
		WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow(owner.String()))
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM venue_unavailabilities").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM venue_images").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM venues").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	req := httptest.NewRequest(http.MethodDelete, "/venues/"+id.String(), nil)
	identify(req, owner, "venues:delete")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteVenueByStranger(t *testing.T) {
	e, mock := newServer(t)
	id, owner := uuid.New(), uuid.New()

	mock.ExpectQuery("SELECT owner_id FROM venues").
		WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow(owner.String()))

	req := httptest.NewRequest(http.MethodDelete, "/venues/"+id.String(), nil)
	identify(req, uuid.New(), "venues:delete")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthProbes(t *testing.T) {
	e, mock := newServer(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
