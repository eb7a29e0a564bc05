package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminToken(t *testing.T, e *testEnv) string {
	t.Helper()
	token, err := e.jwtSvc.GenerateToken(uuid.New(), "admin@legalcity.com", "user", true)
	require.NoError(t, err)
	return token
}

func TestAdminRoutes_RequireAdminFlag(t *testing.T) {
	e := newTestEnv(t)
	registerAndVerify(t, e, "/api/auth/register-user", "alice@mail.com", "secret1", nil)
	userToken := loginToken(t, e, "alice@mail.com", "secret1")

	w := e.do(t, http.MethodGet, "/api/admin/lawyers/unverified", userToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Admin access required")

	w = e.do(t, http.MethodGet, "/api/admin/lawyers/unverified", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdmin_VerifyLawyerWorkflow(t *testing.T) {
	e := newTestEnv(t)
	registerAndVerify(t, e, "/api/auth/register-lawyer", "bob@firm.com", "secret1", map[string]interface{}{
		"registration_id": "BAR-1234",
		"law_firm":        "Counsel & Co",
	})
	token := adminToken(t, e)

	w := e.do(t, http.MethodGet, "/api/admin/lawyers/unverified", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var pending []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pending))
	require.Len(t, pending, 1)
	assert.Equal(t, "bob@firm.com", pending[0]["email"])
	lawyerID := pending[0]["id"].(string)

	w = e.do(t, http.MethodPut, "/api/admin/verify-lawyer/"+lawyerID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Lawyer verified successfully")

	w = e.do(t, http.MethodGet, "/api/admin/lawyers/unverified", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pending))
	assert.Empty(t, pending)

	// The lawyer's own profile reflects the flip.
	lawyerToken := loginToken(t, e, "bob@firm.com", "secret1")
	w = e.do(t, http.MethodGet, "/api/auth/me", lawyerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["lawyer_verified"])
}

func TestAdmin_VerifyLawyerErrors(t *testing.T) {
	e := newTestEnv(t)
	token := adminToken(t, e)

	w := e.do(t, http.MethodPut, "/api/admin/verify-lawyer/not-a-uuid", token, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid lawyer id")

	w = e.do(t, http.MethodPut, "/api/admin/verify-lawyer/"+uuid.NewString(), token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Lawyer not found")
}
