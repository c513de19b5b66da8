package update

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/users-api/internal/models"
	"github.com/magabrotheeeer/users-api/internal/storage"
)

// MockService реализует интерфейс update.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Update(ctx context.Context, id int, req models.DummyUpdateUser) (*models.UserView, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserView), args.Error(1)
}

func boolPtr(b bool) *bool { return &b }

func TestUpdateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	validBody := models.DummyUpdateUser{
		Name:      "Ivan Petrov",
		Email:     "ivan@example.com",
		BirthDate: "1990-05-10",
		Active:    boolPtr(true),
	}

	tests := []struct {
		name           string
		url            string
		requestBody    interface{}
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "успешное обновление пользователя",
			url:         "/users/123",
			requestBody: validBody,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, 123, mock.AnythingOfType("models.DummyUpdateUser")).
					Return(&models.UserView{ID: 123}, nil)
			},
			expectedStatus: http.StatusNoContent,
			expectedBody:   "",
		},
		{
			name:           "некорректный JSON",
			url:            "/users/123",
			requestBody:    "not a json",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"failed to decode request"}`,
		},
		{
			name:           "ошибка валидации пустого запроса",
			url:            "/users/123",
			requestBody:    models.DummyUpdateUser{},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"field Name is a required field, field Email is a required field, field BirthDate is a required field, field Active is a required field"}`,
		},
		{
			name: "признак активности со значением false проходит валидацию",
			url:  "/users/123",
			requestBody: models.DummyUpdateUser{
				Name:      "Ivan Petrov",
				Email:     "ivan@example.com",
				BirthDate: "1990-05-10",
				Active:    boolPtr(false),
			},
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, 123, mock.AnythingOfType("models.DummyUpdateUser")).
					Return(&models.UserView{ID: 123}, nil)
			},
			expectedStatus: http.StatusNoContent,
			expectedBody:   "",
		},
		{
			// валидация выполняется до поиска записи, поэтому сервис не вызывается
			name: "некорректный запрос по несуществующему id",
			url:  "/users/99999",
			requestBody: models.DummyUpdateUser{
				Name:      "I",
				Email:     "not-an-email",
				BirthDate: "1990-05-10",
				Active:    boolPtr(true),
			},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"field Name must be at least 2 characters, field Email must be a valid email address"}`,
		},
		{
			name:           "некорректный id в url",
			url:            "/users/abc",
			requestBody:    validBody,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"failed to decode id from url"}`,
		},
		{
			name:        "пользователь не найден",
			url:         "/users/99999",
			requestBody: validBody,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, 99999, mock.AnythingOfType("models.DummyUpdateUser")).
					Return(nil, storage.ErrUserNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"user not found"}`,
		},
		{
			name:        "почта занята другой записью",
			url:         "/users/123",
			requestBody: validBody,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, 123, mock.AnythingOfType("models.DummyUpdateUser")).
					Return(nil, storage.ErrEmailTaken)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"status":"Error","error":"email already taken"}`,
		},
		{
			name:        "ошибка сервиса",
			url:         "/users/123",
			requestBody: validBody,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, 123, mock.AnythingOfType("models.DummyUpdateUser")).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not update user"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				assert.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPut, tt.url, bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-id"))

			// Устанавливаем URL параметр id для chi
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", strings.TrimPrefix(tt.url, "/users/"))
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, w.Body.String(), tt.expectedBody)
			} else {
				assert.Empty(t, w.Body.String())
			}

			mockService.AssertExpectations(t)
		})
	}
}
