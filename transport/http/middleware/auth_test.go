package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"velvet/config"
	"velvet/infras/otel/mocks"
	"velvet/shared/constant"
	"velvet/transport/http/middleware"
)

func apiKeyFixture(apiKey string) (middleware.AuthRole, *bool) {
	cfg := &config.Config{}
	cfg.App.APIKey = apiKey

	reached := false
	m := middleware.NewAuthRoleMiddleware(nil, mocks.NewOtel(), nil, cfg)

	return m, &reached
}

func nextHandler(reached *bool) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		*reached = true
		writer.WriteHeader(http.StatusOK)
	})
}

func TestAPIKey_MatchingKeySkipsAuth(t *testing.T) {
	m, reached := apiKeyFixture("internal-secret")

	request := httptest.NewRequest(http.MethodGet, "/v1/bookings", nil)
	request.Header.Set(constant.RequestHeaderAPIKey, "internal-secret")
	recorder := httptest.NewRecorder()

	m.APIKey(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		skip, _ := request.Context().Value(middleware.SkipAuthKey("skip")).(bool)
		assert.True(t, skip)

		nextHandler(reached).ServeHTTP(writer, request)
	})).ServeHTTP(recorder, request)

	assert.True(t, *reached)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestAPIKey_WrongKeyIsForbidden(t *testing.T) {
	m, reached := apiKeyFixture("internal-secret")

	request := httptest.NewRequest(http.MethodGet, "/v1/bookings", nil)
	request.Header.Set(constant.RequestHeaderAPIKey, "wrong")
	recorder := httptest.NewRecorder()

	m.APIKey(nextHandler(reached)).ServeHTTP(recorder, request)

	assert.False(t, *reached)
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestAPIKey_AbsentHeaderFallsThroughToClientAuth(t *testing.T) {
	m, reached := apiKeyFixture("internal-secret")

	request := httptest.NewRequest(http.MethodGet, "/v1/bookings", nil)
	recorder := httptest.NewRecorder()

	m.APIKey(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		skip, _ := request.Context().Value(middleware.SkipAuthKey("skip")).(bool)
		assert.False(t, skip)

		nextHandler(reached).ServeHTTP(writer, request)
	})).ServeHTTP(recorder, request)

	assert.True(t, *reached)
	assert.Equal(t, http.StatusOK, recorder.Code)
}
