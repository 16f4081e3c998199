package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"parking-gateway/internal/usecase"
	"parking-gateway/internal/usecase/readmodel"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubBookingUseCase struct {
	result    *usecase.BookingResult
	createErr error

	reservation *readmodel.ReservationRM
	findErr     error

	payments []readmodel.PaymentRM

	gotParams usecase.CreateBookingParams
}

func (u *stubBookingUseCase) CreateBooking(_ context.Context, p usecase.CreateBookingParams) (*usecase.BookingResult, error) {
	u.gotParams = p
	if u.createErr != nil {
		return nil, u.createErr
	}
	return u.result, nil
}

func (u *stubBookingUseCase) GetReservation(context.Context, int64, int64) (*readmodel.ReservationRM, error) {
	return u.reservation, u.findErr
}

func (u *stubBookingUseCase) GetUserReservations(context.Context, int64) ([]readmodel.ReservationRM, error) {
	return nil, nil
}

func (u *stubBookingUseCase) GetReservationPayments(context.Context, int64, int64) ([]readmodel.PaymentRM, error) {
	return u.payments, nil
}

type stubOccupancyUseCase struct {
	record *readmodel.OccupancyRM
	err    error
}

func (u *stubOccupancyUseCase) CheckIn(context.Context, int64, int64) (*readmodel.OccupancyRM, error) {
	return u.record, u.err
}

func (u *stubOccupancyUseCase) CheckOut(context.Context, int64, int64) (*readmodel.OccupancyRM, error) {
	return u.record, u.err
}

func testContext(t *testing.T, method, path string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	c.Request = httptest.NewRequest(method, path, &buf)
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func validBookingBody() map[string]any {
	return map[string]any{
		"slot_id":    3,
		"start_time": "2026-03-10T09:00:00Z",
		"end_time":   "2026-03-10T11:00:00Z",
		"amount":     12.5,
	}
}

func TestCreateBookingCreated(t *testing.T) {
	booking := &stubBookingUseCase{result: &usecase.BookingResult{ReservationID: 101, PaymentID: 202}}
	h := NewReservationHandler(booking, &stubOccupancyUseCase{})

	c, w := testContext(t, http.MethodPost, "/api/bookings", validBookingBody())
	c.Set("user_id", int64(7))

	h.CreateBooking(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(7), booking.gotParams.UserID)
	assert.Equal(t, int64(3), booking.gotParams.SlotID)

	var resp map[string]int64
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(101), resp["reservation_id"])
	assert.Equal(t, int64(202), resp["payment_id"])
}

func TestCreateBookingErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"slot unavailable", usecase.ErrSlotUnavailable, http.StatusConflict},
		{"reservation insert failed", usecase.ErrReservationInsert, http.StatusInternalServerError},
		{"payment insert failed", usecase.ErrPaymentInsert, http.StatusInternalServerError},
		{"occupancy insert failed", usecase.ErrOccupancyInsert, http.StatusInternalServerError},
		{"slot update failed", usecase.ErrSlotUpdate, http.StatusInternalServerError},
		{"commit failed", usecase.ErrCommitFailed, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := &stubBookingUseCase{createErr: tt.err}
			h := NewReservationHandler(booking, &stubOccupancyUseCase{})

			c, w := testContext(t, http.MethodPost, "/api/bookings", validBookingBody())
			c.Set("user_id", int64(7))

			h.CreateBooking(c)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestCreateBookingRejectsInvalidBody(t *testing.T) {
	booking := &stubBookingUseCase{result: &usecase.BookingResult{}}
	h := NewReservationHandler(booking, &stubOccupancyUseCase{})

	body := validBookingBody()
	body["end_time"] = "2026-03-10T08:00:00Z" // before start_time

	c, w := testContext(t, http.MethodPost, "/api/bookings", body)
	c.Set("user_id", int64(7))

	h.CreateBooking(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBookingWithoutAuthContext(t *testing.T) {
	h := NewReservationHandler(&stubBookingUseCase{}, &stubOccupancyUseCase{})

	c, w := testContext(t, http.MethodPost, "/api/bookings", validBookingBody())

	h.CreateBooking(c)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetReservationNotFound(t *testing.T) {
	booking := &stubBookingUseCase{findErr: usecase.ErrReservationNotFound}
	h := NewReservationHandler(booking, &stubOccupancyUseCase{})

	c, w := testContext(t, http.MethodGet, "/api/reservations/99", nil)
	c.Set("user_id", int64(7))
	c.Params = gin.Params{{Key: "id", Value: "99"}}

	h.GetReservation(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetReservationInvalidID(t *testing.T) {
	h := NewReservationHandler(&stubBookingUseCase{}, &stubOccupancyUseCase{})

	c, w := testContext(t, http.MethodGet, "/api/reservations/abc", nil)
	c.Set("user_id", int64(7))
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	h.GetReservation(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetReservationOK(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	booking := &stubBookingUseCase{
		reservation: &readmodel.ReservationRM{
			ID: 101, UserID: 7, SlotID: 3,
			StartTime: start, EndTime: start.Add(2 * time.Hour),
		},
	}
	h := NewReservationHandler(booking, &stubOccupancyUseCase{})

	c, w := testContext(t, http.MethodGet, "/api/reservations/101", nil)
	c.Set("user_id", int64(7))
	c.Params = gin.Params{{Key: "id", Value: "101"}}

	h.GetReservation(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.EqualValues(t, 101, resp["reservation_id"])
}

func TestGetReservationRequiresAuthContext(t *testing.T) {
	h := NewReservationHandler(&stubBookingUseCase{}, &stubOccupancyUseCase{})

	c, w := testContext(t, http.MethodGet, "/api/reservations/101", nil)
	c.Params = gin.Params{{Key: "id", Value: "101"}}

	h.GetReservation(c)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCheckInConflictMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"already checked in", usecase.ErrAlreadyCheckedIn, http.StatusConflict},
		{"not checked in", usecase.ErrNotCheckedIn, http.StatusConflict},
		{"already checked out", usecase.ErrAlreadyCheckedOut, http.StatusConflict},
		{"unknown occupancy", usecase.ErrOccupancyNotFound, http.StatusNotFound},
		{"foreign reservation", usecase.ErrReservationNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewReservationHandler(&stubBookingUseCase{}, &stubOccupancyUseCase{err: tt.err})

			c, w := testContext(t, http.MethodPost, "/api/reservations/101/check-in", nil)
			c.Set("user_id", int64(7))
			c.Params = gin.Params{{Key: "id", Value: "101"}}

			h.CheckIn(c)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestCheckOutOK(t *testing.T) {
	in := time.Date(2026, 3, 10, 9, 5, 0, 0, time.UTC)
	out := in.Add(time.Hour)
	h := NewReservationHandler(&stubBookingUseCase{}, &stubOccupancyUseCase{
		record: &readmodel.OccupancyRM{ID: 1, ReservationID: 101, CheckInTime: &in, CheckOutTime: &out},
	})

	c, w := testContext(t, http.MethodPost, "/api/reservations/101/check-out", nil)
	c.Set("user_id", int64(7))
	c.Params = gin.Params{{Key: "id", Value: "101"}}

	h.CheckOut(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotNil(t, resp["check_out_time"])
}
