package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/activity-logbook/internal/domain"
	"github.com/pkordes/activity-logbook/internal/handler"
	"github.com/pkordes/activity-logbook/internal/service"
)

func TestLogActivity_Created(t *testing.T) {
	date := time.Date(2025, 6, 1, 7, 0, 0, 0, time.UTC)
	var got service.LogActivityInput
	svc := &mockActivityServicer{
		log: func(_ context.Context, in service.LogActivityInput) (domain.Activity, error) {
			got = in
			return domain.NewActivity(in.Name, in.Description, in.Date), nil
		},
	}
	h := newHTTPHandler(svc, nil, nil)

	body := jsonBody(t, map[string]any{"name": "Yoga", "descriptionText": "Morning session", "date": date})
	req := httptest.NewRequest(http.MethodPost, "/activities", body)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Yoga", got.Name)
	require.NotNil(t, got.Description)
	assert.Equal(t, "Morning session", *got.Description)
	assert.True(t, got.Date.Equal(date))

	var resp handler.Activity
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Yoga", resp.Name)
	assert.NotEqual(t, uuid.Nil, resp.ID)
}

func TestLogActivity_NullDescriptionPassedAsAbsent(t *testing.T) {
	var got service.LogActivityInput
	svc := &mockActivityServicer{
		log: func(_ context.Context, in service.LogActivityInput) (domain.Activity, error) {
			got = in
			return domain.NewActivity(in.Name, in.Description, in.Date), nil
		},
	}
	h := newHTTPHandler(svc, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/activities", strings.NewReader(`{"name":"Reading","descriptionText":null}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Nil(t, got.Description)
	assert.False(t, got.Date.IsZero(), "date should default to now")

	var raw map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&raw))
	assert.Contains(t, raw, "descriptionText")
	assert.Nil(t, raw["descriptionText"], "absent description is serialized as null")
}

func TestLogActivity_ValidationError(t *testing.T) {
	svc := &mockActivityServicer{
		log: func(_ context.Context, _ service.LogActivityInput) (domain.Activity, error) {
			return domain.Activity{}, fmt.Errorf("service.ActivityService.Log: %w: name is required", domain.ErrValidation)
		},
	}
	h := newHTTPHandler(svc, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/activities", strings.NewReader(`{"name":""}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeError(t, rec.Body)
	assert.Equal(t, "validation_error", resp.Error.Code)
	assert.Equal(t, "name is required", resp.Error.Message)
}

func TestLogActivity_MalformedBody(t *testing.T) {
	h := newHTTPHandler(&mockActivityServicer{}, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/activities", strings.NewReader(`{"name":`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "bad_request", decodeError(t, rec.Body).Error.Code)
}

func TestLogActivity_ServiceError(t *testing.T) {
	svc := &mockActivityServicer{
		log: func(_ context.Context, _ service.LogActivityInput) (domain.Activity, error) {
			return domain.Activity{}, errors.New("boom")
		},
	}
	h := newHTTPHandler(svc, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/activities", strings.NewReader(`{"name":"Run"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "boom", "internal errors must not leak")
}

func TestListActivities(t *testing.T) {
	want := []domain.Activity{
		domain.NewActivity("Newest", nil, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)),
		domain.NewActivity("Oldest", strPtr("notes"), time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)),
	}
	svc := &mockActivityServicer{
		list: func(_ context.Context) ([]domain.Activity, error) { return want, nil },
	}
	h := newHTTPHandler(svc, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/activities", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp []handler.Activity
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "Newest", resp[0].Name)
	assert.Equal(t, "Oldest", resp[1].Name)
}

func TestListActivities_EmptyIsArray(t *testing.T) {
	svc := &mockActivityServicer{
		list: func(_ context.Context) ([]domain.Activity, error) { return []domain.Activity{}, nil },
	}
	h := newHTTPHandler(svc, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/activities", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
