package wallet

import (
	"context"
	"fmt"
	"net/http"

	"github.com/finwallet/walletkit/core/session"
)

// loginResponse mirrors the auth endpoint's success body.
type loginResponse struct {
	Token string       `json:"token"`
	User  session.User `json:"user"`
}

// Login exchanges credentials for a bearer token and identity record. A
// rejected login is reported as session.ErrAuthenticationFailed carrying
// the server-supplied message; it never touches the unauthorized handler
// because there is no session to tear down.
func (c *Client) Login(ctx context.Context, email, password string) (session.Credentials, error) {
	if !validEmail(email) {
		return session.Credentials{}, fmt.Errorf("%w: invalid email address", ErrValidation)
	}
	if password == "" {
		return session.Credentials{}, fmt.Errorf("%w: password is required", ErrValidation)
	}

	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var resp loginResponse
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   body,
		out:    &resp,
		public: true,
	})
	if err != nil {
		return session.Credentials{}, asAuthError(err)
	}
	if resp.Token == "" || resp.User.ID == "" {
		return session.Credentials{}, fmt.Errorf("%w: malformed login response", session.ErrAuthenticationFailed)
	}
	return session.Credentials{Token: resp.Token, User: resp.User}, nil
}

// Register creates a wallet user. The backend signs the user in
// immediately, so the response carries the same shape as Login.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (session.Credentials, error) {
	if err := req.Validate(); err != nil {
		return session.Credentials{}, err
	}

	var resp loginResponse
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/auth/register",
		body:   req,
		out:    &resp,
		public: true,
	})
	if err != nil {
		return session.Credentials{}, asAuthError(err)
	}
	if resp.Token == "" || resp.User.ID == "" {
		return session.Credentials{}, fmt.Errorf("%w: malformed register response", session.ErrAuthenticationFailed)
	}
	return session.Credentials{Token: resp.Token, User: resp.User}, nil
}

// asAuthError translates a failed auth request into the authentication
// sentinel, preserving the server-supplied message. Transport errors pass
// through untouched.
func asAuthError(err error) error {
	if msg, ok := requestMessage(err); ok {
		if msg == "" {
			msg = "login failed"
		}
		return fmt.Errorf("%w: %s", session.ErrAuthenticationFailed, msg)
	}
	return err
}

// KYCStatus fetches the server-authoritative verification status for the
// current session.
func (c *Client) KYCStatus(ctx context.Context) (session.Status, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/kyc/status",
		out:    &resp,
	}); err != nil {
		return session.StatusError, err
	}
	return session.ParseStatus(resp.Status), nil
}

// UploadKYCDocument submits an identity document for review. The document
// is sent base64-encoded; approval lands asynchronously and is observed
// through KYCStatus.
func (c *Client) UploadKYCDocument(ctx context.Context, documentType string, content []byte) error {
	if documentType == "" {
		return fmt.Errorf("%w: document type is required", ErrValidation)
	}
	if len(content) == 0 {
		return fmt.Errorf("%w: document is empty", ErrValidation)
	}

	body := struct {
		DocumentType string `json:"documentType"`
		Content      []byte `json:"content"`
	}{DocumentType: documentType, Content: content}

	return c.do(ctx, call{
		method: http.MethodPost,
		path:   "/kyc/documents",
		body:   body,
	})
}
