// ABOUTME: Authentication and password recovery operations on the gateway
// ABOUTME: Login, registration, logout, current user, and the three reset steps

package client

import (
	"context"
	"net/http"

	"github.com/abhinavhh/hotel-booking-client/internal/models"
)

// Default failure messages for auth operations
const (
	MsgLoginFailed    = "Login failed. Please try again."
	MsgRegisterFailed = "Registration failed. Please try again."
	MsgLoadUserFailed = "Failed to load user"
	MsgSendOTPFailed  = "Failed to send OTP. Please try again."
	MsgInvalidOTP     = "Invalid or expired OTP"
	MsgResetFailed    = "Failed to reset password. Please try again."
)

// Credentials is the body of POST /auth/login
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the body of POST /auth/register
type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is the success payload of login and registration
type AuthResult struct {
	Token string       `json:"token,omitempty" yaml:"token,omitempty"`
	User  *models.User `json:"user,omitempty" yaml:"user,omitempty"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Login exchanges credentials for a bearer token and authenticates the session.
// Any failure leaves the session anonymous.
func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResult, error) {
	resp, err := c.Request(ctx, http.MethodPost, PathLogin, creds)
	if err != nil {
		c.dropSession(ctx)
		return nil, withDefault(err, MsgLoginFailed)
	}

	var ar authResponse
	if err := resp.Decode(&ar); err != nil {
		c.dropSession(ctx)
		return nil, err
	}
	if ar.Token == "" {
		c.dropSession(ctx)
		return nil, &Error{Kind: KindContract, Status: resp.Status, Message: MsgTokenMissing, Err: ErrTokenMissing}
	}

	if err := c.session.SetAuthenticated(ctx, ar.Token, ar.User); err != nil {
		c.dropSession(ctx)
		return nil, &Error{Kind: KindStorage, Message: "Could not save session", Err: err}
	}

	c.logger.Info("Signed in", "user", ar.User.DisplayName())
	return &AuthResult{Token: ar.Token, User: ar.User}, nil
}

// Register creates an account. A token in the response signs the user in;
// without one the user is recorded and the session stays anonymous.
func (c *Client) Register(ctx context.Context, reg Registration) (*AuthResult, error) {
	resp, err := c.Request(ctx, http.MethodPost, PathRegister, reg)
	if err != nil {
		c.dropSession(ctx)
		return nil, withDefault(err, MsgRegisterFailed)
	}

	var ar authResponse
	if err := resp.Decode(&ar); err != nil {
		c.dropSession(ctx)
		return nil, err
	}

	user := ar.User
	if user == nil {
		user = &models.User{Username: reg.Username, Email: reg.Email}
	}

	if ar.Token != "" {
		if err := c.session.SetAuthenticated(ctx, ar.Token, user); err != nil {
			c.dropSession(ctx)
			return nil, &Error{Kind: KindStorage, Message: "Could not save session", Err: err}
		}
	} else {
		c.session.SetUser(user)
	}

	c.logger.Info("Registered account", "user", user.DisplayName(), "signed_in", ar.Token != "")
	return &AuthResult{Token: ar.Token, User: user}, nil
}

// Logout clears the session locally. It never contacts the backend.
func (c *Client) Logout(ctx context.Context) {
	c.dropSession(ctx)
}

// Me fetches the signed-in user and records it on the session
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	resp, err := c.Request(ctx, http.MethodGet, PathMe, nil)
	if err != nil {
		return nil, withDefault(err, MsgLoadUserFailed)
	}

	var body struct {
		User *models.User `json:"user"`
	}
	if err := resp.Decode(&body); err != nil {
		return nil, err
	}
	if body.User == nil {
		return nil, contractError(resp.Status, errMissingField("user"))
	}

	c.session.SetUser(body.User)
	return body.User, nil
}

// SendResetCode asks the backend to email a one-time code
func (c *Client) SendResetCode(ctx context.Context, email string) (string, error) {
	return c.postMessage(ctx, PathForgotPassword, map[string]string{"email": email}, MsgSendOTPFailed)
}

// VerifyResetCode checks a one-time code for email
func (c *Client) VerifyResetCode(ctx context.Context, email, otp string) (string, error) {
	return c.postMessage(ctx, PathVerifyOTP, map[string]string{"email": email, "otp": otp}, MsgInvalidOTP)
}

// ResetPassword sets a new password using a verified code
func (c *Client) ResetPassword(ctx context.Context, email, otp, newPassword string) (string, error) {
	body := map[string]string{"email": email, "otp": otp, "newPassword": newPassword}
	return c.postMessage(ctx, PathResetPassword, body, MsgResetFailed)
}

// postMessage posts body and returns the payload's message field
func (c *Client) postMessage(ctx context.Context, path string, body any, fallback string) (string, error) {
	resp, err := c.Request(ctx, http.MethodPost, path, body)
	if err != nil {
		return "", withDefault(err, fallback)
	}

	var mr messageResponse
	if len(resp.Body) > 0 {
		if err := resp.Decode(&mr); err != nil {
			return "", err
		}
	}
	return mr.Message, nil
}

// dropSession clears the session, logging rather than returning a storage failure
func (c *Client) dropSession(ctx context.Context) {
	if err := c.session.Clear(context.WithoutCancel(ctx)); err != nil {
		c.logger.Error("Failed to clear persisted token", "error", err)
	}
}
