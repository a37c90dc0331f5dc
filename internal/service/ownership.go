package service

import "flexboard/internal/model"

// AuthorizeMutation allows the owner of a resource or any superuser.
func AuthorizeMutation(ownerID int64, actor model.User) error {
	if actor.ID == ownerID || actor.IsSuperuser {
		return nil
	}
	return model.ErrForbidden
}
