package http

import (
	"net/http"

	"github.com/aussiebroadwan/accounts/pkg/accountsdk"
	"github.com/aussiebroadwan/accounts/pkg/httpx"
)

// NameHandler returns the subject of the verified access token.
//
//	@Summary		Current account name
//	@Description	Returns the login the access token was issued to.
//	@Tags			Accounts
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	accountsdk.NameResponse	"Subject of the token"
//	@Failure		401	"Missing or invalid access token"
//	@Failure		403	"Token subject no longer resolves to an account"
//	@Router			/name [get].
func NameHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subject, ok := httpx.SubjectFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, accountsdk.NameResponse{Name: subject})
	}
}
