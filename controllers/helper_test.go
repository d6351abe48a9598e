package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"learnsphere/config"
	"learnsphere/models"
	"learnsphere/payments"
	"learnsphere/routes"
	"learnsphere/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testJWTSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Course{},
		&models.Booking{},
		&models.Progress{},
		&models.Rating{},
	))

	return db
}

// fakeGateway records checkout-session calls and serves canned sessions.
type fakeGateway struct {
	createErr   error
	retrieveErr error
	created     []payments.CreateSessionParams
	sessions    map[string]*payments.CheckoutSession
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{sessions: map[string]*payments.CheckoutSession{}}
}

func (g *fakeGateway) CreateCheckoutSession(_ context.Context, p payments.CreateSessionParams) (*payments.CheckoutSession, error) {
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.created = append(g.created, p)
	sess := &payments.CheckoutSession{
		ID:            "cs_test_" + uuid.NewString(),
		URL:           "https://checkout.example/pay",
		PaymentStatus: payments.SessionUnpaid,
		Metadata:      p.Metadata,
	}
	g.sessions[sess.ID] = sess
	return sess, nil
}

func (g *fakeGateway) RetrieveCheckoutSession(_ context.Context, id string) (*payments.CheckoutSession, error) {
	if g.retrieveErr != nil {
		return nil, g.retrieveErr
	}
	sess, ok := g.sessions[id]
	if !ok {
		return nil, payments.ErrSessionNotFound
	}
	return sess, nil
}

type testServer struct {
	router    *gin.Engine
	db        *gorm.DB
	gateway   *fakeGateway
	uploadDir string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db := newTestDB(t)
	gateway := newFakeGateway()
	cfg := config.Config{
		JWTSecret:   testJWTSecret,
		FrontendURL: "https://lms.example",
		UploadDir:   t.TempDir(),
	}

	return &testServer{
		router:    routes.SetupRouter(db, cfg, gateway, zap.NewNop()),
		db:        db,
		gateway:   gateway,
		uploadDir: cfg.UploadDir,
	}
}

func (ts *testServer) createUser(t *testing.T, email, role string) models.User {
	t.Helper()
	user := models.User{
		FullName: "Test User",
		Email:    email,
		Role:     role,
		Password: "x",
	}
	require.NoError(t, ts.db.Create(&user).Error)
	return user
}

func authHeader(t *testing.T, user models.User) string {
	t.Helper()
	token, err := utils.CreateToken(testJWTSecret, user.ID, user.Role)
	require.NoError(t, err)
	return "Bearer " + token
}

func (ts *testServer) do(t *testing.T, method, path string, body interface{}, auth string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

func bookingFromBody(t *testing.T, body map[string]interface{}) models.Booking {
	t.Helper()
	raw, err := json.Marshal(body["booking"])
	require.NoError(t, err)
	var b models.Booking
	require.NoError(t, json.Unmarshal(raw, &b))
	return b
}
