package transport

import "github.com/inkwell/backend/domain"

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdateRequest uses pointers so absent fields survive as nil and the
// update stays a merge.
type ProfileUpdateRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

func (r ProfileUpdateRequest) Patch() domain.ProfilePatch {
	return domain.ProfilePatch{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
	}
}

type PostCreateRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Image   string `json:"image"`
}

type PostUpdateRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Image   *string `json:"image"`
}

func (r PostUpdateRequest) Patch() domain.PostPatch {
	return domain.PostPatch{
		Title:   r.Title,
		Content: r.Content,
		Image:   r.Image,
	}
}

type CommentCreateRequest struct {
	Content string `json:"content"`
	PostID  int64  `json:"post_id"`
}

type CommentUpdateRequest struct {
	Content string `json:"content"`
}

// AuthResponse pairs the public user fields with a freshly minted token.
type AuthResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// ProfileResponse wraps the public user fields.
type ProfileResponse struct {
	User *domain.User `json:"user"`
}
