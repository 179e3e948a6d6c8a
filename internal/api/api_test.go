package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dekarrin/symcalc/internal/history/inmem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAPI(t *testing.T) *API {
	t.Helper()
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	return &API{
		History:              inmem.New(),
		Secret:               []byte("test-secret-at-least-32-bytes-long!"),
		OperatorUser:         "operator",
		OperatorPasswordHash: hash,
	}
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func Test_API_evaluate_requiresAuth(t *testing.T) {
	a := newTestAPI(t)
	rec := doJSON(t, a.Router(), http.MethodPost, "/v1/evaluate", evaluateRequest{Expression: "2+2"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func Test_API_login_then_evaluate(t *testing.T) {
	a := newTestAPI(t)
	router := a.Router()

	loginRec := doJSON(t, router, http.MethodPost, "/v1/sessions", loginRequest{
		Username: "operator",
		Password: "correct horse battery staple",
	}, "")
	require.Equal(t, http.StatusOK, loginRec.Code)

	var loginResp loginResponse
	require.NoError(t, json.Unmarshal(loginRec.Body.Bytes(), &loginResp))
	require.NotEmpty(t, loginResp.Token)

	evalRec := doJSON(t, router, http.MethodPost, "/v1/evaluate", evaluateRequest{Expression: "2+2"}, loginResp.Token)
	require.Equal(t, http.StatusOK, evalRec.Code)

	var evalResp evaluateResponse
	require.NoError(t, json.Unmarshal(evalRec.Body.Bytes(), &evalResp))
	assert.Equal(t, 4.0, evalResp.Result)
}

func Test_API_login_badPassword(t *testing.T) {
	a := newTestAPI(t)
	rec := doJSON(t, a.Router(), http.MethodPost, "/v1/sessions", loginRequest{
		Username: "operator",
		Password: "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func Test_API_simplify(t *testing.T) {
	a := newTestAPI(t)
	router := a.Router()

	loginRec := doJSON(t, router, http.MethodPost, "/v1/sessions", loginRequest{
		Username: "operator",
		Password: "correct horse battery staple",
	}, "")
	var loginResp loginResponse
	require.NoError(t, json.Unmarshal(loginRec.Body.Bytes(), &loginResp))

	rec := doJSON(t, router, http.MethodPost, "/v1/simplify", simplifyRequest{Expression: "x+0"}, loginResp.Token)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp simplifyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "1x^(1)", resp.Result)
}
