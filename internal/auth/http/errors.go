package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/aussiebroadwan/devconnect/internal/auth/domain"
	"github.com/aussiebroadwan/devconnect/internal/auth/service"
	"github.com/aussiebroadwan/devconnect/pkg/authsdk"
	"github.com/aussiebroadwan/devconnect/pkg/httpx"
	"github.com/aussiebroadwan/devconnect/pkg/slogx"
)

const (
	MsgUserExists         = "User already exists"
	MsgInvalidCredentials = "Invalid Credentials"
	MsgInvalidBody        = "Invalid request body"
)

// writeServiceError maps credential store errors onto the wire. Anything
// unrecognised is logged and answered with the plain 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		msgs := make([]httpx.ErrorMessage, len(verr.Fields))
		for i, f := range verr.Fields {
			msgs[i] = httpx.ErrorMessage{Msg: f.Message, Param: f.Field}
		}
		httpx.WriteErrors(w, http.StatusBadRequest, msgs...)
	case errors.Is(err, service.ErrDuplicateAccount):
		httpx.WriteErrors(w, http.StatusBadRequest, httpx.ErrorMessage{Msg: MsgUserExists})
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteErrors(w, http.StatusBadRequest, httpx.ErrorMessage{Msg: MsgInvalidCredentials})
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		httpx.WriteServerError(w)
	}
}

// decodeBody reads a JSON request body into dst, answering 400 itself on
// failure. An empty body decodes to the zero value so field validation
// reports what is missing.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !isEOF(err) {
		httpx.WriteErrors(w, http.StatusBadRequest, httpx.ErrorMessage{Msg: MsgInvalidBody})
		return false
	}
	return true
}

func isEOF(err error) bool {
	return errors.Is(err, io.EOF)
}

func toAccount(a domain.Account) authsdk.Account {
	return authsdk.Account{
		ID:     a.ID,
		Name:   a.Name,
		Email:  a.Email,
		Avatar: a.Avatar,
		Date:   a.CreatedAt,
	}
}
