package accountsdk_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/accounts/pkg/accountsdk"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *accountsdk.Client {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /register", func(w http.ResponseWriter, r *http.Request) {
		var req accountsdk.RegisterRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		switch req.Login {
		case "taken":
			writeJSON(w, http.StatusOK, accountsdk.Result{Action: "register", Message: accountsdk.MessageLoginExist})
		case "":
			writeJSON(w, http.StatusUnprocessableEntity, accountsdk.ErrorResponse{
				Code: accountsdk.CodeValidation, Message: "validation failed",
				Details: map[string]string{"login": "cannot be blank"},
			})
		default:
			writeJSON(w, http.StatusOK, accountsdk.Result{Action: "register", Success: true})
		}
	})
	mux.HandleFunc("GET /verify/{link}", func(w http.ResponseWriter, r *http.Request) {
		ok := r.PathValue("link") == "good"
		res := accountsdk.Result{Action: "verify", Success: ok}
		if !ok {
			res.Message = accountsdk.MessageLinkNotExist
		}
		writeJSON(w, http.StatusOK, res)
	})
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, accountsdk.Result{Action: "login", Success: true, Message: "tok"})
	})
	mux.HandleFunc("GET /name", func(w http.ResponseWriter, r *http.Request) {
		switch r.Header.Get("Authorization") {
		case "Bearer tok":
			writeJSON(w, http.StatusOK, accountsdk.NameResponse{Name: "alice"})
		case "Bearer gone":
			w.WriteHeader(http.StatusForbidden)
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	})
	mux.HandleFunc("GET /livez", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, accountsdk.HealthResponse{Status: "ok"})
	})
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusServiceUnavailable, accountsdk.HealthResponse{Status: "degraded"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return accountsdk.NewClient(srv.URL + "/")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestRegister(t *testing.T) {
	c := newServer(t)
	ctx := context.Background()

	res, err := c.Register(ctx, accountsdk.RegisterRequest{Login: "alice", Email: "a@x.com", Password: "password1"})
	require.NoError(t, err)
	require.True(t, res.Success)

	res, err = c.Register(ctx, accountsdk.RegisterRequest{Login: "taken"})
	require.NoError(t, err)
	require.False(t, res.Success)
	require.Equal(t, accountsdk.MessageLoginExist, res.Message)

	_, err = c.Register(ctx, accountsdk.RegisterRequest{})
	require.True(t, accountsdk.IsValidation(err))
	var apiErr *accountsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "cannot be blank", apiErr.Details["login"])
}

func TestVerify(t *testing.T) {
	c := newServer(t)

	res, err := c.Verify(context.Background(), "good")
	require.NoError(t, err)
	require.True(t, res.Success)

	res, err = c.Verify(context.Background(), "bad")
	require.NoError(t, err)
	require.Equal(t, accountsdk.MessageLinkNotExist, res.Message)
}

func TestLoginAndName(t *testing.T) {
	c := newServer(t)
	ctx := context.Background()

	res, err := c.Login(ctx, accountsdk.LoginRequest{Login: "alice", Password: "password1"})
	require.NoError(t, err)
	require.Equal(t, "tok", res.Message)

	name, err := c.Name(ctx, res.Message)
	require.NoError(t, err)
	require.Equal(t, "alice", name.Name)

	_, err = c.Name(ctx, "junk")
	require.True(t, accountsdk.IsUnauthorized(err))

	_, err = c.Name(ctx, "gone")
	require.True(t, accountsdk.IsForbidden(err))
}

func TestHealth(t *testing.T) {
	c := newServer(t)

	live, err := c.GetLiveness(context.Background())
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)

	_, err = c.GetReadiness(context.Background())
	var apiErr *accountsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
}
