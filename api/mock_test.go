package api

import (
	"context"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/Domenick1991/dccbooking/internal/domain"
	"github.com/Domenick1991/dccbooking/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockBookingUseCase is a mock implementation of booking.BookingUseCase
type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) Create(ctx context.Context, sessionID string, req dto.BookingRequest, status domain.DevDccStatus) error {
	args := m.Called(ctx, sessionID, req, status)
	return args.Error(0)
}

func (m *MockBookingUseCase) Replace(ctx context.Context, sessionID string, req dto.BookingReplaceRequest) (*domain.Booking, error) {
	args := m.Called(ctx, sessionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) GetBySessionID(ctx context.Context, sessionID string) (*domain.Booking, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) GetByPassengerID(ctx context.Context, passengerID string) (*domain.Booking, error) {
	args := m.Called(ctx, passengerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) GetOnlyPassengerID(ctx context.Context, passengerID, serviceID string) (*domain.Booking, error) {
	args := m.Called(ctx, passengerID, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) UpdateResult(ctx context.Context, passengerID string, req dto.ResultStatusRequest) (int, error) {
	args := m.Called(ctx, passengerID, req)
	return args.Int(0), args.Error(1)
}

func (m *MockBookingUseCase) ExistsDccBySessionID(ctx context.Context, sessionID string) (bool, error) {
	args := m.Called(ctx, sessionID)
	return args.Bool(0), args.Error(1)
}

const testSessionID = "5f0c8a3e-5d7b-4d43-9a43-7cbd3f0a9f11"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := RegisterValidators(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// newTestRouter mounts both handlers behind a fixed session id.
func newTestRouter(svc *MockBookingUseCase) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(sessionContextKey, testSessionID)
	})
	NewBookingHandler(svc, zap.NewNop()).Register(router)
	NewValidationHandler(svc, zap.NewNop()).Register(router)
	return router
}

func serve(router *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	router.ServeHTTP(w, req)
	return w
}
