package models

import (
	"bytes"
	"encoding/json"
)

// ID accepts both JSON strings and numbers; auth backends disagree on which they send.
type ID string

func (i *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*i = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*i = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*i = ID(n.String())
	return nil
}

func (i ID) String() string { return string(i) }

// User is the account object embedded in auth responses.
type User struct {
	ID    ID     `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// AuthResponse is the success payload of signup, login and verify.
type AuthResponse struct {
	Token   string `json:"token,omitempty"`
	User    *User  `json:"user,omitempty"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse is the failure payload of the auth API.
type ErrorResponse struct {
	Message string `json:"message"`
}

// SignupRequest is the body of POST /api/signup.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyRequest is the body of POST /api/verify.
type VerifyRequest struct {
	Token string `json:"token"`
}
