package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"wardrobe.backend/internal/domain/entities"
	"wardrobe.backend/internal/infrastructure/memory"
	"wardrobe.backend/internal/interfaces/http/handlers"
	"wardrobe.backend/internal/interfaces/http/middleware"
	"wardrobe.backend/internal/usecases"
	"wardrobe.backend/pkg/crypto"
	"wardrobe.backend/pkg/jwt"
	redispkg "wardrobe.backend/pkg/redis"
)

const testSessionKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

var codePattern = regexp.MustCompile(`code is ([A-Z0-9]{6})\.`)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	crypto.SetHashCost(bcrypt.MinCost)
	os.Exit(m.Run())
}

// outbox records every notification instead of delivering it
type outbox struct {
	mu   sync.Mutex
	sent []entities.Notification
}

func (o *outbox) Send(_ context.Context, n entities.Notification) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sent = append(o.sent, n)
	return nil
}

func (o *outbox) lastCode(t *testing.T) string {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()
	require.NotEmpty(t, o.sent, "no notification sent")
	match := codePattern.FindStringSubmatch(o.sent[len(o.sent)-1].Body)
	require.Len(t, match, 2, "notification carries no code")
	return match[1]
}

type testServer struct {
	router *gin.Engine
	store  *memory.Store
	outbox *outbox
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := redispkg.Connect("redis://"+mr.Addr(), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	sessions, err := redispkg.NewSessionStore(client, testSessionKey)
	require.NoError(t, err)

	store := memory.NewStore()
	box := &outbox{}

	authUsecase := usecases.NewAuthUsecase(store, sessions, redispkg.NewCodeStore(client, "password_reset"),
		jwt.NewJWTService("test-secret", 15*time.Minute, 24*time.Hour),
		box,
		usecases.AuthOptions{SessionTTL: time.Hour, ResetTTL: 30 * time.Minute},
	)
	registrationUsecase := usecases.NewRegistrationUsecase(store, box, nil, 10*time.Minute, false)
	productUsecase := usecases.NewProductUsecase(store)

	authHandler := handlers.NewAuthHandler(authUsecase, registrationUsecase, false)
	productHandler := handlers.NewProductHandler(productUsecase)
	inventoryHandler := handlers.NewInventoryHandler(usecases.NewInventoryUsecase(store, nil, 5))
	profileHandler := handlers.NewProfileHandler(usecases.NewProfileUsecase(store), authUsecase)
	adminHandler := handlers.NewAdminHandler(usecases.NewAdminUsecase(store))

	r := gin.New()
	session := middleware.SessionAuthMiddleware(authUsecase)
	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register/init", authHandler.RegisterInit)
	auth.POST("/register/verify", authHandler.RegisterVerify)
	auth.POST("/register/complete", authHandler.RegisterComplete)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", session, authHandler.Logout)
	auth.GET("/me", session, authHandler.GetMe)
	auth.POST("/password/forgot", authHandler.ForgotPassword)
	auth.POST("/password/reset", authHandler.ResetPassword)

	products := api.Group("/products")
	products.GET("", productHandler.ListProducts)
	products.GET("/featured", productHandler.ListFeatured)
	products.GET("/category/:category", productHandler.ListByCategory)
	products.GET("/:id", productHandler.GetProduct)

	inventory := api.Group("/inventory", session, middleware.RequireAdmin())
	inventory.PUT("/stock/:productId", inventoryHandler.AdjustStock)
	inventory.GET("/low-stock", inventoryHandler.GetLowStock)
	inventory.GET("/logs", inventoryHandler.GetLogs)

	profile := api.Group("/profile", session)
	profile.GET("", profileHandler.GetProfile)
	profile.PUT("", profileHandler.UpdateProfile)
	profile.POST("/password", profileHandler.ChangePassword)
	profile.GET("/preferences", profileHandler.GetPreferences)
	profile.PUT("/preferences", profileHandler.UpdatePreferences)
	profile.GET("/addresses", profileHandler.ListAddresses)
	profile.POST("/addresses", profileHandler.CreateAddress)
	profile.PUT("/addresses/:id", profileHandler.UpdateAddress)
	profile.DELETE("/addresses/:id", profileHandler.DeleteAddress)

	admin := api.Group("/admin", session, middleware.RequireAdmin())
	admin.GET("/users", adminHandler.ListUsers)
	admin.POST("/users/:id/toggle-suspension", adminHandler.ToggleSuspension)
	admin.POST("/users/:id/toggle-admin", adminHandler.ToggleAdmin)
	admin.POST("/products", productHandler.CreateProduct)
	admin.PUT("/products/:id", productHandler.UpdateProduct)
	admin.DELETE("/products/:id", productHandler.DeleteProduct)

	return &testServer{router: r, store: store, outbox: box}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, session string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if session != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: session})
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) seedUser(t *testing.T, email, password string, admin bool) *entities.User {
	t.Helper()
	hash, err := crypto.HashPassword(password)
	require.NoError(t, err)
	u := &entities.User{Email: email, PasswordHash: hash, IsVerified: true, IsAdmin: admin}
	require.NoError(t, s.store.Users().Create(context.Background(), u))
	return u
}

func (s *testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": email, "password": password}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c.Value
		}
	}
	t.Fatal("login set no session cookie")
	return ""
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}
