package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumecraft/resume-tailor/internal/models"
)

func newJSONRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.app.Test(newJSONRequest(http.MethodPost, "/api/register",
		`{"username": "susan", "email": "susan@example.com", "password": "cat"}`), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var user models.UserResponse
	decodeJSON(t, resp, &user)
	assert.Equal(t, "susan", user.Username)
	assert.NotEmpty(t, user.ID)

	// Wrong password
	resp, err = env.app.Test(newJSONRequest(http.MethodPost, "/api/login",
		`{"username": "susan", "password": "dog"}`), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Right password
	resp, err = env.app.Test(newJSONRequest(http.MethodPost, "/api/login",
		`{"username": "susan", "password": "cat"}`), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.app.Test(newJSONRequest(http.MethodPost, "/api/register",
		`{"username": "", "email": "", "password": ""}`), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)

	payload := `{"username": "susan", "email": "susan@example.com", "password": "cat"}`
	resp, err := env.app.Test(newJSONRequest(http.MethodPost, "/api/register", payload), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = env.app.Test(newJSONRequest(http.MethodPost, "/api/register", payload), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestLoginUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.app.Test(newJSONRequest(http.MethodPost, "/api/login",
		`{"username": "nobody", "password": "x"}`), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogoutClearsIdentity(t *testing.T) {
	env := newTestEnv(t)
	cookies := env.login(t)

	resp, err := env.app.Test(newRequestWithCookies(http.MethodGet, "/api/resumes", cookies), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = env.app.Test(newRequestWithCookies(http.MethodPost, "/api/logout", cookies), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = env.app.Test(newRequestWithCookies(http.MethodGet, "/api/resumes", cookies), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
