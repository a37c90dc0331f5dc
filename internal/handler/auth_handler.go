package handler

import (
	"mime"
	"net/http"
	"strings"
	"time"

	"flexboard/internal/middleware"
	"flexboard/internal/model"
	"flexboard/internal/service"
	"flexboard/pkg/apierror"
)

type AuthHandler struct {
	service      *service.AuthService
	secureCookie bool
}

func NewAuthHandler(service *service.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{service: service, secureCookie: secureCookie}
}

// Login accepts the OAuth2 password-flow form (username, password) or the same
// fields as JSON. On success the token is returned and also set as an HttpOnly
// cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	payload, err := readLoginRequest(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.service.Login(r.Context(), payload.Username, payload.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    "Bearer " + token.AccessToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(time.Duration(token.ExpiresIn) * time.Second),
	})

	writeSuccess(w, http.StatusOK, token, nil)
}

func readLoginRequest(w http.ResponseWriter, r *http.Request) (model.LoginRequest, error) {
	var payload model.LoginRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := decodeJSON(w, r, &payload); err != nil {
			return payload, err
		}
	} else {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			return payload, apierror.Wrap(model.ErrInvalidInput, "BAD_REQUEST", "invalid form body", err.Error(), http.StatusBadRequest)
		}
		payload.Username = r.PostForm.Get("username")
		payload.Password = r.PostForm.Get("password")
	}

	payload.Username = strings.TrimSpace(payload.Username)
	if payload.Username == "" || payload.Password == "" {
		return payload, apierror.Wrap(model.ErrInvalidInput, "BAD_REQUEST", "username and password are required", "", http.StatusBadRequest)
	}

	return payload, nil
}
