package user

import (
	"fmt"
	"rental-booking/constants"
)

type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	BranchID *uint  `json:"branch_id"`
}

func (r CreateUserRequest) Validate() error {
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if len(r.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	if r.FullName == "" {
		return fmt.Errorf("full_name is required")
	}
	if !constants.IsValidRole(r.Role) {
		return fmt.Errorf("role must be one of SUPER_ADMIN, ADMIN, STAFF")
	}
	return nil
}

type UpdateUserRequest struct {
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
	Role     *string `json:"role"`
	BranchID *uint   `json:"branch_id"`
}

func (r UpdateUserRequest) Validate() error {
	if r.Role != nil && !constants.IsValidRole(*r.Role) {
		return fmt.Errorf("role must be one of SUPER_ADMIN, ADMIN, STAFF")
	}
	return nil
}

type UpdatePasswordRequest struct {
	NewPassword string `json:"new_password"`
}

func (r UpdatePasswordRequest) Validate() error {
	if len(r.NewPassword) < 8 {
		return fmt.Errorf("new_password must be at least 8 characters")
	}
	return nil
}
