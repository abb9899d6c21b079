package account_test

import (
	"testing"

	"github.com/aussiebroadwan/accounts/pkg/accountsdk"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	svc := setupAccountsContainer(t, nil)

	live, err := svc.client.GetLiveness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)

	ready, err := svc.client.GetReadiness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Checks.Database)
	require.Equal(t, "ok", ready.Checks.Signer)

	jwks, err := svc.client.GetJWKS(t.Context())
	require.NoError(t, err)
	require.Len(t, jwks.Keys, 1)
	require.Equal(t, "EdDSA", jwks.Keys[0].Alg)
}

func TestAccountLifecycle(t *testing.T) {
	svc := setupAccountsContainer(t, nil)
	ctx := t.Context()

	link := svc.register(t, "alice", "alice@example.com", "correct-horse")

	res, err := svc.client.Register(ctx, accountsdk.RegisterRequest{Login: "alice", Email: "new@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	require.Equal(t, accountsdk.MessageLoginExist, res.Message)

	res, err = svc.client.Register(ctx, accountsdk.RegisterRequest{Login: "bob", Email: "ALICE@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	require.Equal(t, accountsdk.MessageEmailExist, res.Message)

	res, err = svc.client.Verify(ctx, link)
	require.NoError(t, err)
	require.True(t, res.Success)

	res, err = svc.client.Verify(ctx, link)
	require.NoError(t, err)
	require.Equal(t, accountsdk.MessageLinkNotExist, res.Message)

	require.Equal(t, accountsdk.MessageWrongLogin, svc.login(t, "nobody", "correct-horse").Message)
	require.Equal(t, accountsdk.MessageWrongPassword, svc.login(t, "alice", "battery-staple").Message)

	login := svc.login(t, "alice", "correct-horse")
	require.True(t, login.Success)

	name, err := svc.client.Name(ctx, login.Message)
	require.NoError(t, err)
	require.Equal(t, "alice", name.Name)

	_, err = svc.client.Name(ctx, login.Message+"x")
	require.True(t, accountsdk.IsUnauthorized(err))
}

func TestValidationRejected(t *testing.T) {
	svc := setupAccountsContainer(t, nil)

	_, err := svc.client.Register(t.Context(), accountsdk.RegisterRequest{Login: "", Email: "nope", Password: "short"})
	require.True(t, accountsdk.IsValidation(err))
	require.Empty(t, svc.verifyLinks(t))
}

func TestRequireVerified(t *testing.T) {
	svc := setupAccountsContainer(t, map[string]string{"AUTH_REQUIRE_VERIFIED": "true"})

	link := svc.register(t, "carol", "carol@example.com", "correct-horse")
	require.Equal(t, accountsdk.MessageNotVerified, svc.login(t, "carol", "correct-horse").Message)

	res, err := svc.client.Verify(t.Context(), link)
	require.NoError(t, err)
	require.True(t, res.Success)

	require.True(t, svc.login(t, "carol", "correct-horse").Success)
}
