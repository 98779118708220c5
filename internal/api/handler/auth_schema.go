package handler

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	// Role is optional; empty defaults to "user".
	Role string `json:"role,omitempty"`
}

// authResponse is returned by both login and register.
type authResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
	// ExpiresIn is the token lifetime in seconds.
	ExpiresIn int64  `json:"expiresIn"`
	Message   string `json:"message"`
}

// validationResponse is returned by the token validation check. It is always
// a 200: invalid tokens are an answer, not an error.
type validationResponse struct {
	Valid    bool   `json:"valid"`
	Message  string `json:"message"`
	Username string `json:"username,omitempty"`
}
