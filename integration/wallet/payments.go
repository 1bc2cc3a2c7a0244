package wallet

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Deposit funds an account from a stored payment method. The call is
// idempotent: a retry after a network failure cannot double apply.
func (c *Client) Deposit(ctx context.Context, req DepositRequest) (Transaction, error) {
	if err := req.Validate(); err != nil {
		return Transaction{}, err
	}
	var tx Transaction
	if err := c.do(ctx, call{
		method:     http.MethodPost,
		path:       "/wallet/deposit",
		body:       req,
		out:        &tx,
		idempotent: true,
	}); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}

// Withdraw moves funds from an account to a linked bank.
func (c *Client) Withdraw(ctx context.Context, req WithdrawRequest) (Transaction, error) {
	if err := req.Validate(); err != nil {
		return Transaction{}, err
	}
	var tx Transaction
	if err := c.do(ctx, call{
		method:     http.MethodPost,
		path:       "/wallet/withdraw",
		body:       req,
		out:        &tx,
		idempotent: true,
	}); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}

// Transfer sends money to another wallet user by email.
func (c *Client) Transfer(ctx context.Context, req TransferRequest) (Transaction, error) {
	if err := req.Validate(); err != nil {
		return Transaction{}, err
	}
	var tx Transaction
	if err := c.do(ctx, call{
		method:     http.MethodPost,
		path:       "/wallet/transfer",
		body:       req,
		out:        &tx,
		idempotent: true,
	}); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}

// TransactionFilter narrows a transaction listing. The zero value lists
// everything the backend returns by default.
type TransactionFilter struct {
	AccountID string
	Limit     int
}

// Transactions lists ledger entries, newest first.
func (c *Client) Transactions(ctx context.Context, filter TransactionFilter) ([]Transaction, error) {
	q := url.Values{}
	if filter.AccountID != "" {
		q.Set("accountId", filter.AccountID)
	}
	if filter.Limit > 0 {
		q.Set("limit", strconv.Itoa(filter.Limit))
	}
	path := "/wallet/transactions"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp struct {
		Transactions []Transaction `json:"transactions"`
	}
	if err := c.do(ctx, call{method: http.MethodGet, path: path, out: &resp}); err != nil {
		return nil, err
	}
	return resp.Transactions, nil
}

// GenerateQR mints a payable QR code for receiving an offline payment.
// The backend returns the rendered code as a data URL alongside the
// payment id to settle against.
func (c *Client) GenerateQR(ctx context.Context, req GenerateQRRequest) (QRPayment, error) {
	if err := req.Validate(); err != nil {
		return QRPayment{}, err
	}
	var payment QRPayment
	if err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/wallet/generate-qr",
		body:   req,
		out:    &payment,
	}); err != nil {
		return QRPayment{}, err
	}
	return payment, nil
}

// InitiateQRPayment settles a previously minted QR payment from the
// payer's side.
func (c *Client) InitiateQRPayment(ctx context.Context, req InitiateQRPaymentRequest) (Transaction, error) {
	if err := req.Validate(); err != nil {
		return Transaction{}, err
	}
	var tx Transaction
	if err := c.do(ctx, call{
		method:     http.MethodPost,
		path:       "/wallet/initiate-qr-payment",
		body:       req,
		out:        &tx,
		idempotent: true,
	}); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}

// Purchase pays for a store item from a wallet account.
func (c *Client) Purchase(ctx context.Context, req PurchaseRequest) (Transaction, error) {
	if err := req.Validate(); err != nil {
		return Transaction{}, err
	}
	var tx Transaction
	if err := c.do(ctx, call{
		method:     http.MethodPost,
		path:       "/wallet/purchase",
		body:       req,
		out:        &tx,
		idempotent: true,
	}); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}
