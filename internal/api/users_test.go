package api

import (
	"net/http"
	"testing"

	"bookkeeper/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestListUsers_AdminOnlyAndNoHashes(t *testing.T) {
	r, gdb := newTestRouter(t)
	_, adminToken := createTestUser(t, gdb, "boss", "pw123456", domain.RoleAdmin)
	_, accountantToken := createTestUser(t, gdb, "clerk", "pw123456", domain.RoleAccountant)

	denied := doRequest(t, r, http.MethodGet, "/users", accountantToken, nil)
	require.Equal(t, http.StatusForbidden, denied.Code)

	w := doRequest(t, r, http.MethodGet, "/users", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var users []map[string]any
	decodeJSON(t, w, &users)
	require.Len(t, users, 2)
	for _, u := range users {
		require.NotContains(t, u, "password", "hash must never be serialized")
		require.NotEmpty(t, u["username"])
		require.NotEmpty(t, u["role"])
	}
}

func TestUpdateUser_ChangesPassword(t *testing.T) {
	r, gdb := newTestRouter(t)
	_, adminToken := createTestUser(t, gdb, "boss", "pw123456", domain.RoleAdmin)
	clerk, _ := createTestUser(t, gdb, "clerk", "oldpass99", domain.RoleAccountant)

	w := doRequest(t, r, http.MethodPatch, "/users/"+clerk.ID, adminToken,
		map[string]any{"password": "newpass99"})
	require.Equal(t, http.StatusOK, w.Code)

	oldLogin := doRequest(t, r, http.MethodPost, "/auth/login", "",
		map[string]any{"username": "clerk", "password": "oldpass99"})
	require.Equal(t, http.StatusUnauthorized, oldLogin.Code)

	newLogin := doRequest(t, r, http.MethodPost, "/auth/login", "",
		map[string]any{"username": "clerk", "password": "newpass99"})
	require.Equal(t, http.StatusOK, newLogin.Code)
}

func TestUpdateUser_ChangesRole(t *testing.T) {
	r, gdb := newTestRouter(t)
	_, adminToken := createTestUser(t, gdb, "boss", "pw123456", domain.RoleAdmin)
	clerk, _ := createTestUser(t, gdb, "clerk", "pw123456", domain.RoleAccountant)

	w := doRequest(t, r, http.MethodPatch, "/users/"+clerk.ID, adminToken,
		map[string]any{"role": domain.RoleAdmin})
	require.Equal(t, http.StatusOK, w.Code)

	var updated domain.User
	require.NoError(t, gdb.First(&updated, "id = ?", clerk.ID).Error)
	require.Equal(t, domain.RoleAdmin, updated.Role)
}

func TestUpdateUser_NotFound(t *testing.T) {
	r, gdb := newTestRouter(t)
	_, adminToken := createTestUser(t, gdb, "boss", "pw123456", domain.RoleAdmin)

	w := doRequest(t, r, http.MethodPatch, "/users/missing-id", adminToken,
		map[string]any{"role": domain.RoleAdmin})
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "not_found", errorKind(t, w))
}

func TestUpdateUser_DuplicateUsername(t *testing.T) {
	r, gdb := newTestRouter(t)
	_, adminToken := createTestUser(t, gdb, "boss", "pw123456", domain.RoleAdmin)
	clerk, _ := createTestUser(t, gdb, "clerk", "pw123456", domain.RoleAccountant)

	w := doRequest(t, r, http.MethodPatch, "/users/"+clerk.ID, adminToken,
		map[string]any{"username": "boss"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "duplicate_username", errorKind(t, w))
}

func TestDeleteUser_RecordListingFallsBackToRawID(t *testing.T) {
	r, gdb := newTestRouter(t)
	admin, adminToken := createTestUser(t, gdb, "boss", "pw123456", domain.RoleAdmin)
	clerk, clerkToken := createTestUser(t, gdb, "clerk", "pw123456", domain.RoleAccountant)
	seedCatalog(t, gdb, admin.ID)

	created := doRequest(t, r, http.MethodPost, "/records", clerkToken, recordBody())
	require.Equal(t, http.StatusCreated, created.Code)

	w := doRequest(t, r, http.MethodDelete, "/users/"+clerk.ID, adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// The record survives with a dangling creator reference
	list := doRequest(t, r, http.MethodGet, "/records", adminToken, nil)
	var records []RecordResponse
	decodeJSON(t, list, &records)
	require.Len(t, records, 1)
	require.Equal(t, clerk.ID, records[0].CreatedBy, "deleted user shown by raw id")
}

func TestDeleteUser_NotFound(t *testing.T) {
	r, gdb := newTestRouter(t)
	_, adminToken := createTestUser(t, gdb, "boss", "pw123456", domain.RoleAdmin)

	w := doRequest(t, r, http.MethodDelete, "/users/missing-id", adminToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRegister_InvalidatesUserListingCache(t *testing.T) {
	r, gdb := newTestRouterWithRedis(t)
	_, adminToken := createTestUser(t, gdb, "boss", "pw123456", domain.RoleAdmin)

	// Prime the cached listing before the new user exists
	first := doRequest(t, r, http.MethodGet, "/users", adminToken, nil)
	require.Equal(t, http.StatusOK, first.Code)
	var before []domain.User
	decodeJSON(t, first, &before)
	require.Len(t, before, 1)

	w := doRequest(t, r, http.MethodPost, "/auth/register", adminToken,
		map[string]any{"username": "newhire", "password": "pw123456", "role": domain.RoleAccountant})
	require.Equal(t, http.StatusCreated, w.Code)

	// The listing must reflect the new user immediately, not after the TTL
	second := doRequest(t, r, http.MethodGet, "/users", adminToken, nil)
	require.Equal(t, http.StatusOK, second.Code)
	var after []domain.User
	decodeJSON(t, second, &after)
	require.Len(t, after, 2)
}
