package dto

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type MemberResponse struct {
	MemberID  string `json:"member_id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

type AuthResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token,omitempty"`
	Member       MemberResponse `json:"member"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type MeResponse struct {
	Member MemberResponse `json:"member"`
}

type CreateMemberRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type CreateMemberResponse struct {
	Success bool           `json:"success"`
	Member  MemberResponse `json:"member"`
}
