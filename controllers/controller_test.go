package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hostel-meal-management/middleware"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var secret = []byte("0123456789abcdef")

type fakeIntents struct {
	amount int64
	err    error
}

func (f *fakeIntents) CreatePaymentIntent(_ context.Context, amount int64) (string, error) {
	f.amount = amount
	if f.err != nil {
		return "", f.err
	}
	return "pi_secret_123", nil
}

type fakeImages struct{}

func (fakeImages) PutImage(context.Context, string, string, string, io.Reader, int64) (string, error) {
	return "http://images/meals/x.jpg", nil
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestController(opts ...Option) *Controller {
	h := &Controller{timeout: time.Second, tokenSecret: secret, tokenTTL: time.Minute}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// serve runs handler for a single request with the caller email set.
func serve(method, route, path, body string, handler gin.HandlerFunc) *httptest.ResponseRecorder {
	r := gin.New()
	r.Use(middleware.RequestIDMiddleware(), func(c *gin.Context) {
		c.Set(middleware.EmailKey, "ann@example.com")
	})
	r.Handle(method, route, handler)

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not JSON: %s", w.Body.String())
	}
	msg, _ := resp["error"].(string)
	return msg
}

func TestGetMeal_MalformedID(t *testing.T) {
	h := newTestController()
	w := serve(http.MethodGet, "/meals/:id", "/meals/123", "", h.GetMeal())
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestGetMeals_BadPrice(t *testing.T) {
	h := newTestController()
	w := serve(http.MethodGet, "/meals", "/meals?minPrice=cheap", "", h.GetMeals())
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if msg := errorOf(t, w); !strings.Contains(msg, "minPrice") {
		t.Errorf("error should name minPrice, got %q", msg)
	}
}

func TestCreateMeal_MissingRequiredField(t *testing.T) {
	h := newTestController()
	w := serve(http.MethodPost, "/meals", "/meals", `{"title": "Khichuri", "price": 60}`, h.CreateMeal())
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if msg := errorOf(t, w); !strings.Contains(msg, "category") {
		t.Errorf("error should name category, got %q", msg)
	}
}

func TestUpdateMeal_Validation(t *testing.T) {
	h := newTestController()
	path := "/meals/" + primitive.NewObjectID().Hex()

	tests := []struct {
		name string
		body string
	}{
		{"non-numeric price", `{"price": "sixty"}`},
		{"no fields", `{}`},
		{"negative like", `{"like": -1}`},
		{"malformed json", `{"title": `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(http.MethodPut, "/meals/:id", path, tt.body, h.UpdateMeal())
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestLikeMeal_RequiresLike(t *testing.T) {
	h := newTestController()
	path := "/meals/" + primitive.NewObjectID().Hex()
	w := serve(http.MethodPatch, "/meals/:id", path, `{"title": "ignored"}`, h.LikeMeal())
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestUploadMealImage(t *testing.T) {
	h := newTestController()
	path := "/meals/" + primitive.NewObjectID().Hex() + "/image"
	w := serve(http.MethodPost, "/meals/:id/image", path, "", h.UploadMealImage())
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("without a store: expected 503, got %d", w.Code)
	}

	h = newTestController(WithImages(fakeImages{}))
	w = serve(http.MethodPost, "/meals/:id/image", path, "", h.UploadMealImage())
	if w.Code != http.StatusBadRequest {
		t.Errorf("without a file: expected 400, got %d", w.Code)
	}
}

func TestUploadMealImage_RejectsNonImages(t *testing.T) {
	h := newTestController(WithImages(fakeImages{}))

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", "notes.txt")
	if err != nil {
		t.Fatal(err)
	}
	part.Write([]byte("hello"))
	mw.Close()

	r := gin.New()
	r.POST("/meals/:id/image", h.UploadMealImage())
	req := httptest.NewRequest(http.MethodPost, "/meals/"+primitive.NewObjectID().Hex()+"/image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCreatePaymentIntent(t *testing.T) {
	intents := &fakeIntents{}
	h := newTestController(WithPaymentIntents(intents))

	w := serve(http.MethodPost, "/create-payment-intent", "/create-payment-intent", `{"price": "19.99"}`, h.CreatePaymentIntent())
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if intents.amount != 1999 {
		t.Errorf("amount = %d, want 1999", intents.amount)
	}
	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["clientSecret"] != "pi_secret_123" {
		t.Errorf("unexpected response %v", resp)
	}
}

func TestCreatePaymentIntent_Errors(t *testing.T) {
	tests := []struct {
		name    string
		intents PaymentIntentCreator
		body    string
		want    int
	}{
		{"not configured", nil, `{"price": 10}`, http.StatusServiceUnavailable},
		{"missing price", &fakeIntents{}, `{}`, http.StatusBadRequest},
		{"non-numeric price", &fakeIntents{}, `{"price": "ten"}`, http.StatusBadRequest},
		{"zero price", &fakeIntents{}, `{"price": 0}`, http.StatusBadRequest},
		{"provider failure", &fakeIntents{err: errors.New("card_declined")}, `{"price": 10}`, http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestController()
			if tt.intents != nil {
				h.intents = tt.intents
			}
			w := serve(http.MethodPost, "/create-payment-intent", "/create-payment-intent", tt.body, h.CreatePaymentIntent())
			if w.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, w.Code)
			}
		})
	}
}

func TestSavePayment_Validation(t *testing.T) {
	h := newTestController()
	w := serve(http.MethodPost, "/payments", "/payments", `{"email": "ann@example.com", "price": 20}`, h.SavePayment())
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing transactionId: expected 400, got %d", w.Code)
	}
}

func TestLogin_RequiresPassword(t *testing.T) {
	h := newTestController()

	tests := []struct {
		name string
		body string
	}{
		{"email only", `{"email": "admin@example.com"}`},
		{"empty password", `{"email": "admin@example.com", "password": ""}`},
		{"bad email", `{"email": "not-an-email", "password": "secret123"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(http.MethodPost, "/jwt", "/jwt", tt.body, h.Login())
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			if strings.Contains(w.Body.String(), "token") {
				t.Errorf("no token may be issued, got %s", w.Body.String())
			}
		})
	}
}

func TestSignUp_Validation(t *testing.T) {
	h := newTestController()

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"email": "ann@example.com", "password": "secret123"}`},
		{"short password", `{"name": "Ann", "email": "ann@example.com", "password": "short"}`},
		{"missing password", `{"name": "Ann", "email": "ann@example.com"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(http.MethodPost, "/users/signup", "/users/signup", tt.body, h.SignUp())
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatal(err)
	}
	if hash == "secret123" {
		t.Fatal("password stored in plain text")
	}

	if ok, _ := VerifyPassword("secret123", hash); !ok {
		t.Error("correct password rejected")
	}
	if ok, msg := VerifyPassword("secret124", hash); ok || msg == "" {
		t.Error("wrong password accepted")
	}
	if ok, _ := VerifyPassword("", ""); ok {
		t.Error("a user without a password must never log in")
	}
}

func TestUserEndpoints_Validation(t *testing.T) {
	h := newTestController()

	w := serve(http.MethodPost, "/users", "/users", `{"name": "Ann"}`, h.UpsertUser())
	if w.Code != http.StatusBadRequest {
		t.Errorf("upsert without email: expected 400, got %d", w.Code)
	}

	w = serve(http.MethodPatch, "/users/:email/badge", "/users/ann@example.com/badge", `{"badge": "Diamond"}`, h.UpdateBadge())
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown badge: expected 400, got %d", w.Code)
	}

	w = serve(http.MethodPatch, "/users/:email/badge", "/users/ann@example.com/badge", `{}`, h.UpdateBadge())
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing badge: expected 400, got %d", w.Code)
	}

	w = serve(http.MethodPatch, "/users/admin/:id", "/users/admin/nope", "", h.SetRole())
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad id: expected 400, got %d", w.Code)
	}
}

func TestCheckAdmin_OtherUserForbidden(t *testing.T) {
	h := newTestController()
	w := serve(http.MethodGet, "/users/admin/:email", "/users/admin/bob@example.com", "", h.CheckAdmin())
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

func TestRequestedMeal_Validation(t *testing.T) {
	h := newTestController()

	w := serve(http.MethodPost, "/requested-meals", "/requested-meals", `{"title": "Biryani", "email": "ann@example.com"}`, h.RequestMeal())
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing mealId: expected 400, got %d", w.Code)
	}

	path := "/requested-meals/" + primitive.NewObjectID().Hex()
	w = serve(http.MethodPatch, "/requested-meals/:id", path, `{"status": "eaten"}`, h.UpdateRequestedMealStatus())
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown status: expected 400, got %d", w.Code)
	}
}

func TestReview_Validation(t *testing.T) {
	h := newTestController()

	w := serve(http.MethodPost, "/reviews", "/reviews", `{"mealId": "x", "email": "ann@example.com", "review": "tasty", "rating": 7}`, h.AddReview())
	if w.Code != http.StatusBadRequest {
		t.Errorf("rating out of range: expected 400, got %d", w.Code)
	}

	path := "/reviews/" + primitive.NewObjectID().Hex()
	w = serve(http.MethodPatch, "/reviews/:id", path, `{"rating": "five"}`, h.UpdateReview())
	if w.Code != http.StatusBadRequest {
		t.Errorf("non-numeric rating: expected 400, got %d", w.Code)
	}
}

func TestWithDefault(t *testing.T) {
	fields := withDefault(nil, "like", 0)
	fields = withDefault(fields, "like", 5)
	if len(fields) != 1 || fields[0].Value != 0 {
		t.Errorf("existing keys must be kept, got %v", fields)
	}
}
