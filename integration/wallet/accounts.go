package wallet

import (
	"context"
	"fmt"
	"net/http"
)

// Accounts lists the caller's wallet sub-accounts.
func (c *Client) Accounts(ctx context.Context) ([]Account, error) {
	var resp struct {
		Accounts []Account `json:"accounts"`
	}
	if err := c.do(ctx, call{method: http.MethodGet, path: "/wallet/accounts", out: &resp}); err != nil {
		return nil, err
	}
	return resp.Accounts, nil
}

// CreateAccount opens a new sub-account with a zero balance.
func (c *Client) CreateAccount(ctx context.Context, req CreateAccountRequest) (Account, error) {
	if err := req.Validate(); err != nil {
		return Account{}, err
	}
	var account Account
	if err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/wallet/accounts",
		body:   req,
		out:    &account,
	}); err != nil {
		return Account{}, err
	}
	return account, nil
}

// DeleteAccount removes an empty sub-account.
func (c *Client) DeleteAccount(ctx context.Context, accountID string) error {
	if accountID == "" {
		return fmt.Errorf("%w: account id is required", ErrValidation)
	}
	return c.do(ctx, call{method: http.MethodDelete, path: "/wallet/accounts/" + accountID})
}

// LinkedBanks lists external bank accounts available for withdrawal.
func (c *Client) LinkedBanks(ctx context.Context) ([]Bank, error) {
	var resp struct {
		Banks []Bank `json:"banks"`
	}
	if err := c.do(ctx, call{method: http.MethodGet, path: "/wallet/banks", out: &resp}); err != nil {
		return nil, err
	}
	return resp.Banks, nil
}

// LinkBank attaches an external bank account.
func (c *Client) LinkBank(ctx context.Context, req LinkBankRequest) (Bank, error) {
	if err := req.Validate(); err != nil {
		return Bank{}, err
	}
	var bank Bank
	if err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/wallet/banks",
		body:   req,
		out:    &bank,
	}); err != nil {
		return Bank{}, err
	}
	return bank, nil
}

// UnlinkBank detaches an external bank account.
func (c *Client) UnlinkBank(ctx context.Context, bankID string) error {
	if bankID == "" {
		return fmt.Errorf("%w: bank id is required", ErrValidation)
	}
	return c.do(ctx, call{method: http.MethodDelete, path: "/wallet/banks/" + bankID})
}

// PaymentMethods lists stored cards.
func (c *Client) PaymentMethods(ctx context.Context) ([]PaymentMethod, error) {
	var resp struct {
		PaymentMethods []PaymentMethod `json:"paymentMethods"`
	}
	if err := c.do(ctx, call{method: http.MethodGet, path: "/wallet/payment-methods", out: &resp}); err != nil {
		return nil, err
	}
	return resp.PaymentMethods, nil
}

// AddPaymentMethod stores a new card. Only the last four digits come back.
func (c *Client) AddPaymentMethod(ctx context.Context, req AddPaymentMethodRequest) (PaymentMethod, error) {
	if err := req.Validate(); err != nil {
		return PaymentMethod{}, err
	}
	var method PaymentMethod
	if err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/wallet/payment-methods",
		body:   req,
		out:    &method,
	}); err != nil {
		return PaymentMethod{}, err
	}
	return method, nil
}

// RemovePaymentMethod deletes a stored card.
func (c *Client) RemovePaymentMethod(ctx context.Context, methodID string) error {
	if methodID == "" {
		return fmt.Errorf("%w: payment method id is required", ErrValidation)
	}
	return c.do(ctx, call{method: http.MethodDelete, path: "/wallet/payment-methods/" + methodID})
}
