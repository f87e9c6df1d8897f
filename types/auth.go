package types

// LoginRequest is the admin-console login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() string {
	if r.Email == "" {
		return "email is required"
	}
	if r.Password == "" {
		return "password is required"
	}
	return ""
}

// LoginUser is the profile block returned alongside the access token.
type LoginUser struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	BranchID *uint  `json:"branch_id,omitempty"`
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	User        LoginUser `json:"user"`
}
