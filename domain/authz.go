package domain

// EnsureOwner is the single ownership check shared by every resource service:
// a user may only mutate posts and comments they authored.
func EnsureOwner(ownerID int64, actor *User) error {
	if actor == nil {
		return ErrUnauthorized
	}
	if actor.ID != ownerID {
		return ErrForbidden
	}
	return nil
}
