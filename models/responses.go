package models

// Response is the uniform JSON envelope returned by every endpoint.
// Success is always present; Message carries a human-readable error
// description and is omitted on successful responses.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// AuthResponse is returned by login and register. Token is the compact JWS
// string; the same credential is also set as an HTTP-only cookie so the
// client may use either transport.
type AuthResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
	User    *User  `json:"user,omitempty"`
}

// AvailabilityResponse is returned by the check-username and check-email
// endpoints.
type AvailabilityResponse struct {
	Available bool `json:"available"`
}

// VerifyResponse is returned by the verify-otp endpoint.
type VerifyResponse struct {
	Verified bool   `json:"verified"`
	Message  string `json:"message,omitempty"`
}
