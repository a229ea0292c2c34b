package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cantacomigo/zapmenu/database"
)

// newMockDB swaps the global DB for a sqlmock-backed one. Expectations are
// matched in order only; the generated SQL text is not asserted.
func newMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(
		sqlmock.QueryMatcherFunc(func(expectedSQL, actualSQL string) error { return nil })))
	require.NoError(t, err)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	previous := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = previous
		conn.Close()
	})
	return mock
}

func menuRequest(slug string) (*httptest.ResponseRecorder, *gin.Context) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/menu/"+slug, nil)
	c.Params = gin.Params{{Key: "slug", Value: slug}}
	return w, c
}

func TestGetMenuRendersEmptySectionsWhenCatalogReadsFail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := newMockDB(t)

	restaurantRows := sqlmock.NewRows([]string{"id", "slug", "name", "is_active"}).
		AddRow(1, "cantina", "Cantina da Esquina", true)
	mock.ExpectQuery("restaurants").WillReturnRows(restaurantRows)
	mock.ExpectQuery("categories").WillReturnError(assert.AnError)
	mock.ExpectQuery("menu_items").WillReturnError(assert.AnError)
	mock.ExpectQuery("promotions").WillReturnError(assert.AnError)
	mock.ExpectQuery("giveaways").WillReturnError(assert.AnError)

	w, c := menuRequest("cantina")
	GetMenu(c)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"menu":[]`)
	assert.Contains(t, body, `"is_open":true`)
	assert.Contains(t, body, "Cantina da Esquina")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMenuUnknownSlugIs404(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := newMockDB(t)

	mock.ExpectQuery("restaurants").WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w, c := menuRequest("nope")
	GetMenu(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
