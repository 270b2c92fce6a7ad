package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/devconnect/internal/auth/service"
	"github.com/aussiebroadwan/devconnect/pkg/authsdk"
	"github.com/aussiebroadwan/devconnect/pkg/httpx"
	"github.com/aussiebroadwan/devconnect/pkg/slogx"
)

type AuthHandler struct {
	AccountService *service.AccountService
	TokenService   *service.TokenService
}

// HandleGet godoc
//
//	@Summary		Current account
//	@Description	Returns the account the session token was issued for. The password hash is never included.
//	@Tags			Auth
//	@Security		TokenAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.Account			"_id, name, email, avatar, date"
//	@Failure		401	{object}	authsdk.ErrorsResponse	"missing, invalid or expired token"
//	@Failure		500	{string}	string					"Server Error"
//	@Router			/api/auth [get].
func (h *AuthHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accountID, ok := httpx.AccountIDFromContext(ctx)
	if !ok {
		httpx.WriteUnauthorized(w)
		return
	}

	acct, err := h.AccountService.GetByID(ctx, accountID)
	if err != nil {
		// A valid token for an account that no longer exists.
		if errors.Is(err, service.ErrNotFound) {
			log.Warn("token subject has no account")
			httpx.WriteUnauthorized(w)
			return
		}
		log.Error("failed to load account", "err", err)
		httpx.WriteServerError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toAccount(acct))
}

// HandlePost godoc
//
//	@Summary		Log in
//	@Description	Verifies email and password and issues a session token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		authsdk.LoginRequest	true	"credentials"
//	@Success		200		{object}	authsdk.TokenResponse	"token"
//	@Failure		400		{object}	authsdk.ErrorsResponse	"validation errors or Invalid Credentials"
//	@Failure		429		{object}	authsdk.ErrorsResponse	"rate limited"
//	@Failure		500		{string}	string					"Server Error"
//	@Router			/api/auth [post].
func (h *AuthHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	acct, err := h.AccountService.Verify(ctx, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	token, err := h.TokenService.Issue(acct.ID)
	if err != nil {
		log.Error("failed to issue token", "err", err)
		httpx.WriteServerError(w)
		return
	}

	log.Info("login succeeded", "account_id", acct.ID)
	httpx.WriteJSON(w, http.StatusOK, authsdk.TokenResponse{Token: token})
}
