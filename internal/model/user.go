package model

// User is the teacher profile embedded in auth responses. No account row
// backs it; the demo profile is synthesized from configuration.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	School    string `json:"school,omitempty"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
	IsActive  bool   `json:"is_active"`
}

// LoginRequest is the /auth/login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is the /auth/login success body.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

// RegisterRequest is the /auth/register payload. School is optional.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
	School   string `json:"school"`
}

// RegisterResponse echoes a constructed profile; nothing is stored.
type RegisterResponse struct {
	Message string `json:"message"`
	User    struct {
		Email  string `json:"email"`
		Name   string `json:"name"`
		School string `json:"school"`
		Role   string `json:"role"`
	} `json:"user"`
}
