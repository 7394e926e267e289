package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockpulse/internal/types"
)

type fakeStore struct {
	saved     []types.Subscriber
	deleted   []string
	putErr    error
	deleteErr error
}

func (f *fakeStore) Put(ctx context.Context, sub types.Subscriber) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.saved = append(f.saved, sub)
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, email string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, email)
	return nil
}

func newTestRouter(store *fakeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewSubscriptionHandler(store)
	r := gin.New()
	r.POST("/subscribe", h.Subscribe)
	r.GET("/unsubscribe", h.Unsubscribe)
	r.GET("/health", h.Health)
	return r
}

func TestSubscribe(t *testing.T) {
	store := &fakeStore{}
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/subscribe",
		strings.NewReader(`{"email":"a@x.com","symbols":["ABC","XYZ"]}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Subscription saved successfully")

	require.Len(t, store.saved, 1)
	assert.Equal(t, "a@x.com", store.saved[0].Email)
	assert.Equal(t, []string{"ABC", "XYZ"}, store.saved[0].Symbols)
	assert.NotEmpty(t, store.saved[0].Timestamp)
}

func TestSubscribeRejectsIncompleteRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "plain text"},
		{"missing email", `{"symbols":["ABC"]}`},
		{"missing symbols", `{"email":"a@x.com"}`},
		{"empty symbols", `{"email":"a@x.com","symbols":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			r := newTestRouter(store)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/subscribe", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "Missing email or symbols list")
			assert.Empty(t, store.saved)
		})
	}
}

func TestSubscribeStoreFailure(t *testing.T) {
	store := &fakeStore{putErr: errors.New("table unavailable")}
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/subscribe",
		strings.NewReader(`{"email":"a@x.com","symbols":["ABC"]}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestUnsubscribe(t *testing.T) {
	store := &fakeStore{}
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/unsubscribe?email=a%40x.com", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "successfully unsubscribed")
	assert.Equal(t, []string{"a@x.com"}, store.deleted)
}

func TestUnsubscribeMissingEmail(t *testing.T) {
	store := &fakeStore{}
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/unsubscribe", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing email parameter")
	assert.Empty(t, store.deleted)
}

func TestUnsubscribeStoreFailure(t *testing.T) {
	store := &fakeStore{deleteErr: errors.New("table unavailable")}
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/unsubscribe?email=a%40x.com", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "An error occurred")
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&fakeStore{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":true`)
}
