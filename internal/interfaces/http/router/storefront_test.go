package router

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	catalogapp "github.com/storefront/backend/internal/application/catalog"
	identityapp "github.com/storefront/backend/internal/application/identity"
	tradeapp "github.com/storefront/backend/internal/application/trade"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/storefront/backend/internal/infrastructure/config"
	infraevent "github.com/storefront/backend/internal/infrastructure/event"
	"github.com/storefront/backend/internal/infrastructure/payment"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/infrastructure/storage"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// pngHeader is enough for content sniffing to report image/png
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta *struct {
		Total      int64 `json:"total"`
		Page       int   `json:"page"`
		PageSize   int   `json:"page_size"`
		TotalPages int   `json:"total_pages"`
	} `json:"meta"`
}

type storefront struct {
	t       *testing.T
	engine  *gin.Engine
	users   *persistence.GormUserRepository
	gateway *payment.SandboxGateway
}

func newStorefront(t *testing.T) *storefront {
	t.Helper()
	identity.PasswordCost = bcrypt.MinCost

	db, err := gorm.Open(sqlite.Open(":memory:"), persistence.GormConfig(gormlogger.Default.LogMode(gormlogger.Silent)))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(persistence.Models()...))

	log := zap.NewNop()
	users := persistence.NewGormUserRepository(db)
	categories := persistence.NewGormCategoryRepository(db)
	products := persistence.NewGormProductRepository(db)
	orders := persistence.NewGormOrderRepository(db)

	catalogCache := cache.NewInMemoryStore()
	idempotency := cache.NewInMemoryIdempotencyStore(time.Minute)
	t.Cleanup(func() { _ = idempotency.Close() })

	bus := infraevent.NewInMemoryEventBus(log)
	bus.Subscribe(catalogapp.NewCatalogCacheInvalidator(catalogCache, log))

	jwt := auth.NewJWTService(config.JWTConfig{
		Secret:     "router-test-secret-that-is-32-chars!",
		Expiration: time.Hour,
		Issuer:     "storefront-test",
	})
	blacklist := auth.NewInMemoryTokenBlacklist()
	gateway := payment.NewSandboxGateway()

	authService := identityapp.NewAuthService(users, jwt, blacklist, bus, log)
	handlers := Handlers{
		Health:   handler.NewHealthHandler("test", map[string]handler.HealthCheck{"database": sqlDB.PingContext}),
		Auth:     handler.NewAuthHandler(authService),
		Category: handler.NewCategoryHandler(catalogapp.NewCategoryService(categories, products, catalogCache, time.Minute, bus, log)),
		Product:  handler.NewProductHandler(catalogapp.NewProductService(products, categories, storage.NewMemoryPhotoStorage(), bus, log)),
		Order:    handler.NewOrderHandler(tradeapp.NewOrderService(orders, bus, log)),
		Checkout: handler.NewCheckoutHandler(tradeapp.NewCheckoutService(products, orders, gateway, bus, log,
			tradeapp.WithIdempotency(idempotency, shared.DefaultIdempotencyConfig()))),
	}
	guards := Guards{
		SignIn: middleware.RequireSignIn(jwt, blacklist, log),
		Admin:  middleware.RequireAdmin(authService, log),
	}

	engine := gin.New()
	engine.Use(middleware.RequestID())
	NewRouter(engine).Register(Storefront(handlers, guards)...).Setup()

	return &storefront{t: t, engine: engine, users: users, gateway: gateway}
}

func (s *storefront) do(method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, "/api/v1"+path, reader)
	req.Header.Set("Content-Type", "application/json")
	return s.send(req, token)
}

func (s *storefront) send(req *http.Request, token string) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	if bytes.HasPrefix(bytes.TrimSpace(w.Body.Bytes()), []byte("{")) {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func (s *storefront) register(name, email string) {
	s.t.Helper()
	w, env := s.do(http.MethodPost, "/auth/register", "", map[string]string{
		"name": name, "email": email, "password": "secret123",
		"phone": "555-0100", "address": "1 Main St", "answer": "blue",
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	require.Equal(s.t, "User Register Successfully", env.Message)
}

func (s *storefront) login(email, password string) string {
	s.t.Helper()
	w, env := s.do(http.MethodPost, "/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	var result identityapp.LoginResult
	require.NoError(s.t, json.Unmarshal(env.Data, &result))
	return result.Token
}

func (s *storefront) promote(email string) {
	s.t.Helper()
	ctx := context.Background()
	user, err := s.users.FindByEmail(ctx, email)
	require.NoError(s.t, err)
	require.NoError(s.t, user.SetRole(identity.RoleAdmin))
	require.NoError(s.t, s.users.Update(ctx, user))
}

func (s *storefront) createProduct(token, name, price, categoryID string, photo []byte) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fields := map[string]string{
		"name": name, "description": name + " description", "price": price,
		"category": categoryID, "quantity": "5", "shipping": "yes",
	}
	for k, v := range fields {
		require.NoError(s.t, mw.WriteField(k, v))
	}
	if photo != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="photo"; filename="photo.png"`)
		h.Set("Content-Type", "image/png")
		part, err := mw.CreatePart(h)
		require.NoError(s.t, err)
		_, err = part.Write(photo)
		require.NoError(s.t, err)
	}
	require.NoError(s.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/product/create-product", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return s.send(req, token)
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestStorefront_System(t *testing.T) {
	s := newStorefront(t)

	w, env := s.do(http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Welcome to ecommerce app", env.Message)

	w, env = s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	health := decode[handler.HealthData](t, env.Data)
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "healthy", health.Services["database"])
}

func TestStorefront_Auth(t *testing.T) {
	s := newStorefront(t)
	s.register("Jane", "jane@example.com")

	t.Run("duplicate registration is not an HTTP error", func(t *testing.T) {
		w, env := s.do(http.MethodPost, "/auth/register", "", map[string]string{
			"name": "Jane", "email": "JANE@example.com", "password": "x",
			"phone": "1", "address": "a", "answer": "b",
		})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.False(t, env.Success)
		assert.Equal(t, "Already Register please login", env.Message)
	})

	t.Run("missing field", func(t *testing.T) {
		w, env := s.do(http.MethodPost, "/auth/register", "", map[string]string{"name": "Bob"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Email is Required", env.Message)
	})

	t.Run("login failures", func(t *testing.T) {
		tests := []struct {
			email, password string
			status          int
			message         string
		}{
			{"", "", http.StatusNotFound, "Invalid email or password"},
			{"nobody@example.com", "secret123", http.StatusNotFound, "Email is not registerd"},
			{"jane@example.com", "wrong", http.StatusBadRequest, "Invalid Password"},
		}
		for _, tt := range tests {
			w, env := s.do(http.MethodPost, "/auth/login", "", map[string]string{"email": tt.email, "password": tt.password})
			assert.Equal(t, tt.status, w.Code, tt.message)
			assert.Equal(t, tt.message, env.Message)
		}
	})

	token := s.login("jane@example.com", "secret123")

	t.Run("probes", func(t *testing.T) {
		w, env := s.do(http.MethodGet, "/auth/user-auth", token, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"ok":true}`, string(env.Data))

		w, _ = s.do(http.MethodGet, "/auth/user-auth", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		w, env = s.do(http.MethodGet, "/auth/admin-auth", token, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "UnAuthorized Access", env.Message)
	})

	t.Run("profile", func(t *testing.T) {
		w, env := s.do(http.MethodPut, "/auth/profile", "Bearer "+token, map[string]string{"password": "123"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Passsword is required and 6 character long", env.Message)

		w, env = s.do(http.MethodPut, "/auth/profile", token, map[string]string{"name": "Jane Q"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Profile Updated SUccessfully", env.Message)
		profile := decode[handler.ProfileData](t, env.Data)
		assert.Equal(t, "Jane Q", profile.UpdatedUser.Name)
		assert.Equal(t, "jane@example.com", profile.UpdatedUser.Email)
	})

	t.Run("forgot password", func(t *testing.T) {
		w, env := s.do(http.MethodPost, "/auth/forgot-password", "", map[string]string{
			"email": "jane@example.com", "answer": "red", "newPassword": "newpass1",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Wrong Email Or Answer", env.Message)

		w, env = s.do(http.MethodPost, "/auth/forgot-password", "", map[string]string{
			"email": "jane@example.com", "answer": "Blue", "newPassword": "newpass1",
		})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Password Reset Successfully", env.Message)
		s.login("jane@example.com", "newpass1")
	})

	t.Run("logout revokes the token", func(t *testing.T) {
		w, _ := s.do(http.MethodPost, "/auth/logout", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		w, env := s.do(http.MethodGet, "/auth/me", token, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid token", env.Message)
	})
}

func TestStorefront_Catalog(t *testing.T) {
	s := newStorefront(t)
	s.register("Admin", "admin@example.com")
	s.promote("admin@example.com")
	admin := s.login("admin@example.com", "secret123")
	s.register("Jane", "jane@example.com")
	customer := s.login("jane@example.com", "secret123")

	w, _ := s.do(http.MethodPost, "/category/create-category", customer, map[string]string{"name": "Books"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w, env := s.do(http.MethodPost, "/category/create-category", admin, map[string]string{"name": "  Books  "})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "New category created", env.Message)
	books := decode[catalogapp.CategoryResponse](t, env.Data)
	assert.Equal(t, "books", books.Slug)

	w, env = s.do(http.MethodPost, "/category/create-category", admin, map[string]string{"name": "Books"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Category Already Exists", env.Message)

	w, env = s.do(http.MethodGet, "/category/get-category", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]catalogapp.CategoryResponse](t, env.Data), 1)

	t.Run("product lifecycle", func(t *testing.T) {
		w, env := s.createProduct(admin, "Go Book", "29.50", books.ID.String(), nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "photo is Required and should be less then 1mb", env.Message)

		w, env = s.createProduct(admin, "Go Book", "29.50", books.ID.String(), pngHeader)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		product := decode[catalogapp.ProductResponse](t, env.Data)
		assert.Equal(t, "go-book", product.Slug)
		assert.True(t, product.HasPhoto)

		w, env = s.do(http.MethodGet, "/product/get-product/go-book", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Single Product Fetched", env.Message)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/product/product-photo/"+product.ID.String(), nil)
		w, _ = s.send(req, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
		assert.Equal(t, "public, max-age=86400", w.Header().Get("Cache-Control"))
		assert.Equal(t, pngHeader, w.Body.Bytes())

		w, env = s.do(http.MethodGet, "/product/product-count", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"total":1}`, string(env.Data))

		w, env = s.do(http.MethodGet, "/product/product-list/abc", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, env.Meta)
		assert.Equal(t, 1, env.Meta.Page)
		assert.Equal(t, 6, env.Meta.PageSize)
		assert.Equal(t, int64(1), env.Meta.Total)

		w, env = s.do(http.MethodPost, "/product/product-filters", "", map[string]any{
			"checked": []string{books.ID.String()}, "radio": []string{"0", "29.50"},
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[[]catalogapp.ProductResponse](t, env.Data), 1)

		w, env = s.do(http.MethodGet, "/product/search/GO", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[[]catalogapp.ProductResponse](t, env.Data), 1)

		w, env = s.do(http.MethodGet, "/product/product-category/books", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		byCategory := decode[catalogapp.CategoryProducts](t, env.Data)
		assert.Equal(t, "Books", byCategory.Category.Name)
		assert.Len(t, byCategory.Products, 1)

		w, env = s.do(http.MethodDelete, "/category/delete-category/"+books.ID.String(), admin, nil)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "Category has products", env.Message)

		w, env = s.do(http.MethodDelete, "/product/delete-product/"+product.ID.String(), admin, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Product Deleted successfully", env.Message)

		w, env = s.do(http.MethodGet, "/product/product-photo/"+product.ID.String(), "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "No photo found", env.Message)
	})

	w, env = s.do(http.MethodDelete, "/category/delete-category/"+books.ID.String(), admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Category Deleted Successfully", env.Message)

	w, env = s.do(http.MethodGet, "/category/single-category/books", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Category not found", env.Message)
}

func TestStorefront_Checkout(t *testing.T) {
	s := newStorefront(t)
	s.register("Admin", "admin@example.com")
	s.promote("admin@example.com")
	admin := s.login("admin@example.com", "secret123")
	s.register("Jane", "jane@example.com")
	buyer := s.login("jane@example.com", "secret123")

	_, env := s.do(http.MethodPost, "/category/create-category", admin, map[string]string{"name": "Merch"})
	merch := decode[catalogapp.CategoryResponse](t, env.Data)
	w, env := s.createProduct(admin, "Mug", "12.00", merch.ID.String(), pngHeader)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	mug := decode[catalogapp.ProductResponse](t, env.Data)

	w, env = s.do(http.MethodGet, "/product/braintree/token", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode[handler.ClientTokenData](t, env.Data).ClientToken)

	pay := func(nonce, key string) (*httptest.ResponseRecorder, envelope) {
		raw, err := json.Marshal(map[string]any{
			"nonce": nonce,
			"cart":  []map[string]string{{"_id": mug.ID.String()}, {"_id": mug.ID.String()}},
		})
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/product/braintree/payment", bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		if key != "" {
			req.Header.Set(handler.IdempotencyKeyHeader, key)
		}
		return s.send(req, buyer)
	}

	w, _ = s.do(http.MethodPost, "/product/braintree/payment", "", map[string]any{"nonce": "x"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env = pay(payment.SandboxDeclinePrefix, "")
	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Equal(t, "ERR_PAYMENT_DECLINED", env.Error.Code)

	w, env = pay(payment.SandboxValidNonce, "retry-1")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	first := decode[tradeapp.CheckoutResult](t, env.Data)
	assert.True(t, first.OK)

	w, env = pay(payment.SandboxValidNonce, "retry-1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, first.OrderID, decode[tradeapp.CheckoutResult](t, env.Data).OrderID)
	assert.Equal(t, int64(2), s.gateway.Sales(), "replay must not charge again")

	w, env = s.do(http.MethodGet, "/auth/orders", buyer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	orders := decode[[]tradeapp.OrderResponse](t, env.Data)
	require.Len(t, orders, 1)
	assert.Equal(t, "24", orders[0].Amount.String())
	assert.Equal(t, "Not Process", orders[0].Status)

	w, _ = s.do(http.MethodGet, "/auth/all-orders", buyer, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env = s.do(http.MethodGet, "/auth/all-orders?page=1&page_size=10", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), env.Meta.Total)
	assert.Equal(t, 10, env.Meta.PageSize)

	statusPath := "/auth/order-status/" + first.OrderID.String()
	w, env = s.do(http.MethodPut, statusPath, admin, map[string]string{"status": "Shipped"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Shipped", decode[tradeapp.OrderResponse](t, env.Data).Status)

	w, _ = s.do(http.MethodPut, statusPath, admin, map[string]string{"status": "Lost"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(http.MethodPut, statusPath, admin, map[string]string{"status": "cancel"})
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = s.do(http.MethodPut, statusPath, admin, map[string]string{"status": "Processing"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
