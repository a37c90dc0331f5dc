package handler

import (
	"net/http"

	"flexboard/internal/middleware"
	"flexboard/internal/model"
)

// actorFromRequest returns the authenticated caller. Routes using it sit behind
// RequireAuth, so a missing user is a wiring bug and reported as unauthorized.
func actorFromRequest(r *http.Request) (model.Actor, error) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		return model.Actor{}, model.ErrUnauthorized
	}
	return model.Actor{User: user, IP: middleware.ClientIP(r)}, nil
}
