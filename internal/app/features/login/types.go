// internal/app/features/login/types.go
package login

// loginRequest accepts either phone+otp or email+password.
type loginRequest struct {
	Phone string `json:"phone,omitempty"`
	Name  string `json:"name,omitempty"`
	OTP   string `json:"otp,omitempty"`

	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

type userPayload struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Avatar  string `json:"avatar,omitempty"`
	GroupID string `json:"groupId,omitempty"`
}

type loginResponse struct {
	Token   string      `json:"token"`
	Role    string      `json:"role"`
	Pending bool        `json:"pending,omitempty"`
	User    userPayload `json:"user"`
}

type meResponse struct {
	Role     string      `json:"role"`
	Pending  bool        `json:"pending,omitempty"`
	Disabled bool        `json:"disabled,omitempty"`
	User     userPayload `json:"user"`
}
