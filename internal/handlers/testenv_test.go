package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/lavibaby/shop/internal/cart"
	"github.com/lavibaby/shop/internal/catalog"
	"github.com/lavibaby/shop/internal/checkout"
	"github.com/lavibaby/shop/internal/events"
	"github.com/lavibaby/shop/internal/hash"
	"github.com/lavibaby/shop/internal/models"
	"github.com/lavibaby/shop/internal/payment"
)

type testEnv struct {
	T        *testing.T
	E        *echo.Echo
	DB       *gorm.DB
	Catalog  *catalog.Catalog
	Sessions *cart.Sessions
	Notifier *events.Notifier

	Auth *AuthHandler
	Prod *ProductHandler
	Cart *CartHandler
	Chk  *CheckoutHandler
}

func newTestEnv(t *testing.T) *testEnv {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Product{}, &models.User{}, &models.RefreshToken{},
		&models.Order{}, &models.OrderItem{},
	); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	cat, err := catalog.New(db, nil)
	require.NoError(t, err)

	gw := payment.NewGateway()
	gw.Delay = 0
	svc := checkout.NewService(db, gw, nil, nil)
	svc.Delay = 0

	env := &testEnv{
		T:        t,
		E:        echo.New(),
		DB:       db,
		Catalog:  cat,
		Sessions: cart.NewSessions(),
		Notifier: events.NewNotifier(),
	}
	env.Auth = &AuthHandler{
		DB:            db,
		JWTSecret:     []byte("test_jwt_secret"),
		RefreshSecret: []byte("test_refresh_secret"),
		Producer:      nil,
		Notifier:      env.Notifier,
		Sessions:      env.Sessions,
	}
	env.Prod = &ProductHandler{Catalog: cat}
	env.Cart = &CartHandler{Sessions: env.Sessions, Catalog: cat}
	env.Chk = &CheckoutHandler{Sessions: env.Sessions, Service: svc}
	return env
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}, cookies ...*http.Cookie) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

// asUser mimics the auto-refresh middleware having validated the session.
func asUser(c echo.Context, userID uint, role string) {
	c.Set("userID", userID)
	c.Set("role", role)
}

func (env *testEnv) createUser(email, password, role string) models.User {
	pwHash, err := hash.HashPassword(password)
	require.NoError(env.T, err)

	user := models.User{Email: email, PasswordHash: pwHash, Role: role}
	require.NoError(env.T, env.DB.Create(&user).Error)
	return user
}
