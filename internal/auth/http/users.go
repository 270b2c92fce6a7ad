package http

import (
	"net/http"

	"github.com/aussiebroadwan/devconnect/internal/auth/service"
	"github.com/aussiebroadwan/devconnect/pkg/authsdk"
	"github.com/aussiebroadwan/devconnect/pkg/httpx"
	"github.com/aussiebroadwan/devconnect/pkg/slogx"
)

type UsersHandler struct {
	AccountService *service.AccountService
	TokenService   *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		Register
//	@Description	Creates an account and issues its first session token.
//	@Description	All invalid fields are reported together, each with the offending param.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			body	body		authsdk.RegisterRequest	true	"name, email, password"
//	@Success		200		{object}	authsdk.TokenResponse	"token"
//	@Failure		400		{object}	authsdk.ErrorsResponse	"validation errors or User already exists"
//	@Failure		429		{object}	authsdk.ErrorsResponse	"rate limited"
//	@Failure		500		{string}	string					"Server Error"
//	@Router			/api/users [post].
func (h *UsersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	acct, err := h.AccountService.Register(ctx, req.Name, req.Email, req.Password)
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

	httpx.WriteJSON(w, http.StatusOK, authsdk.TokenResponse{Token: token})
}
