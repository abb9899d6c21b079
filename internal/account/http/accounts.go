package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/accounts/internal/account/domain"
	"github.com/aussiebroadwan/accounts/internal/account/service"
	"github.com/aussiebroadwan/accounts/pkg/accountsdk"
	"github.com/aussiebroadwan/accounts/pkg/httpx"
	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

type AccountHandler struct {
	AccountService *service.AccountService
}

// HandleRegister creates an account.
//
//	@Summary		Register an account
//	@Description	Creates an unverified account and mails a single-use verification link.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accountsdk.RegisterRequest	true	"Registration payload"
//	@Success		200		{object}	accountsdk.Result			"Outcome; success=false carries login exist, email exist or internal error"
//	@Failure		400		{object}	accountsdk.ErrorResponse	"Body is not valid JSON"
//	@Failure		422		{object}	accountsdk.ErrorResponse	"Field validation failed"
//	@Router			/register [post].
func (h *AccountHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req accountsdk.RegisterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeInvalidBody(w, r, err)
		return
	}

	res, err := h.AccountService.Register(r.Context(), service.RegisterInput{
		Login:    req.Login,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeResult(w, res)
}

// HandleVerify consumes a verification link.
//
//	@Summary		Verify an email address
//	@Description	Consumes a verification link and marks the account verified.
//	@Tags			Accounts
//	@Produce		json
//	@Param			link	path		string				true	"Link address from the verification mail"
//	@Success		200		{object}	accountsdk.Result	"Outcome; success=false carries link not exist"
//	@Router			/verify/{link} [get].
func (h *AccountHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	writeResult(w, h.AccountService.Verify(r.Context(), r.PathValue("link")))
}

// HandleLogin checks credentials and returns an access token.
//
//	@Summary		Log in
//	@Description	Checks credentials. On success the message is a signed EdDSA access token.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accountsdk.LoginRequest		true	"Credentials"
//	@Success		200		{object}	accountsdk.Result			"Outcome; success=false carries wrong login, wrong password or internal error"
//	@Failure		400		{object}	accountsdk.ErrorResponse	"Body is not valid JSON"
//	@Failure		422		{object}	accountsdk.ErrorResponse	"Field validation failed"
//	@Router			/login [post].
func (h *AccountHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req accountsdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeInvalidBody(w, r, err)
		return
	}

	res, err := h.AccountService.Login(r.Context(), service.LoginInput{
		Login:    req.Login,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeResult(w, res)
}

func writeResult(w http.ResponseWriter, res domain.Result) {
	httpx.WriteJSON(w, http.StatusOK, accountsdk.Result{
		Action:  res.Action,
		Success: res.Success,
		Message: res.Message,
	})
}

func writeInvalidBody(w http.ResponseWriter, r *http.Request, err error) {
	slogx.FromContext(r.Context()).Debug("invalid request body", slog.Any("error", err))
	httpx.WriteError(w, http.StatusBadRequest, accountsdk.CodeInvalidBody, "request body must be a single JSON object", nil)
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		httpx.WriteError(w, http.StatusUnprocessableEntity, accountsdk.CodeValidation, service.ErrValidation.Error(), verr.Fields)
		return
	}
	slogx.FromContext(r.Context()).Error("unhandled service error", slog.Any("error", err))
	httpx.WriteError(w, http.StatusInternalServerError, accountsdk.CodeServerError, "internal server error", nil)
}
