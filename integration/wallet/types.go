package wallet

import (
	"fmt"
	"regexp"
	"time"

	"github.com/finwallet/walletkit/pkg/money"
)

// Account is a wallet sub-account (checking, savings).
type Account struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Name     string       `json:"name"`
	Balance  money.Amount `json:"balance"`
	Currency string       `json:"currency"`
}

// Bank is an external bank account linked for funding.
type Bank struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// AccountNumber is masked by the backend; only the last four digits
	// ever reach the client.
	AccountNumber string `json:"accountNumber"`
}

// PaymentMethod is a stored card.
type PaymentMethod struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Last4      string `json:"last4"`
	ExpiryDate string `json:"expiryDate"`
}

// Transaction is a ledger entry.
type Transaction struct {
	ID          string       `json:"id"`
	Type        string       `json:"type"`
	Amount      money.Amount `json:"amount"`
	Currency    string       `json:"currency"`
	Description string       `json:"description"`
	Status      string       `json:"status"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// Notification is a user-facing message from the backend.
type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// Profile is the full user profile, a superset of the identity record
// kept in the session.
type Profile struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
}

// QRPayment is an offline-payable code minted by the backend.
type QRPayment struct {
	PaymentID     string       `json:"paymentId"`
	QRCodeDataURL string       `json:"qrCodeDataURL"`
	Amount        money.Amount `json:"amount"`
}

// emailPattern is intentionally simple; the backend is authoritative.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func validEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// RegisterRequest creates a new wallet user.
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Validate rejects malformed input before any network call.
func (r RegisterRequest) Validate() error {
	if r.FirstName == "" || r.LastName == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if !validEmail(r.Email) {
		return fmt.Errorf("%w: invalid email address", ErrValidation)
	}
	if len(r.Password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}
	return nil
}

// DepositRequest funds an account from a stored payment method.
type DepositRequest struct {
	AccountID       string       `json:"accountId"`
	PaymentMethodID string       `json:"paymentMethodId"`
	Amount          money.Amount `json:"amount"`
}

func (r DepositRequest) Validate() error {
	if r.AccountID == "" {
		return fmt.Errorf("%w: account is required", ErrValidation)
	}
	if r.PaymentMethodID == "" {
		return fmt.Errorf("%w: payment method is required", ErrValidation)
	}
	if err := r.Amount.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}

// WithdrawRequest moves funds to a linked bank.
type WithdrawRequest struct {
	AccountID string       `json:"accountId"`
	BankID    string       `json:"bankId"`
	Amount    money.Amount `json:"amount"`
}

func (r WithdrawRequest) Validate() error {
	if r.AccountID == "" {
		return fmt.Errorf("%w: account is required", ErrValidation)
	}
	if r.BankID == "" {
		return fmt.Errorf("%w: destination bank is required", ErrValidation)
	}
	if err := r.Amount.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}

// TransferRequest sends money to another wallet user.
type TransferRequest struct {
	RecipientEmail string       `json:"recipientEmail"`
	Amount         money.Amount `json:"amount"`
	Note           string       `json:"note,omitempty"`
}

func (r TransferRequest) Validate() error {
	if !validEmail(r.RecipientEmail) {
		return fmt.Errorf("%w: invalid recipient email", ErrValidation)
	}
	if err := r.Amount.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}

// LinkBankRequest attaches an external bank account.
type LinkBankRequest struct {
	Name          string `json:"name"`
	AccountNumber string `json:"accountNumber"`
}

func (r LinkBankRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("%w: bank name is required", ErrValidation)
	}
	if len(r.AccountNumber) < 4 {
		return fmt.Errorf("%w: account number is required", ErrValidation)
	}
	return nil
}

// CreateAccountRequest opens a new sub-account.
type CreateAccountRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

func (r CreateAccountRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("%w: account name is required", ErrValidation)
	}
	if r.Type == "" {
		return fmt.Errorf("%w: account type is required", ErrValidation)
	}
	return nil
}

// AddPaymentMethodRequest stores a new card.
type AddPaymentMethodRequest struct {
	CardNumber string `json:"cardNumber"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
}

func (r AddPaymentMethodRequest) Validate() error {
	if len(r.CardNumber) < 12 {
		return fmt.Errorf("%w: card number is required", ErrValidation)
	}
	if r.Expiry == "" || r.CVV == "" {
		return fmt.Errorf("%w: expiry and cvv are required", ErrValidation)
	}
	return nil
}

// GenerateQRRequest mints a payable QR code for the given amount.
type GenerateQRRequest struct {
	AccountID string       `json:"accountId"`
	Amount    money.Amount `json:"amount"`
}

func (r GenerateQRRequest) Validate() error {
	if r.AccountID == "" {
		return fmt.Errorf("%w: account is required", ErrValidation)
	}
	if err := r.Amount.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}

// InitiateQRPaymentRequest settles a minted QR payment.
type InitiateQRPaymentRequest struct {
	PaymentID string `json:"paymentId"`
	AccountID string `json:"accountId"`
}

func (r InitiateQRPaymentRequest) Validate() error {
	if r.PaymentID == "" {
		return fmt.Errorf("%w: payment id is required", ErrValidation)
	}
	if r.AccountID == "" {
		return fmt.Errorf("%w: account is required", ErrValidation)
	}
	return nil
}

// PurchaseRequest pays for a store item.
type PurchaseRequest struct {
	ItemID    string       `json:"itemId"`
	AccountID string       `json:"accountId"`
	Amount    money.Amount `json:"amount"`
}

func (r PurchaseRequest) Validate() error {
	if r.ItemID == "" {
		return fmt.Errorf("%w: item is required", ErrValidation)
	}
	if r.AccountID == "" {
		return fmt.Errorf("%w: account is required", ErrValidation)
	}
	if err := r.Amount.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}

// UpdateProfileRequest changes mutable profile fields.
type UpdateProfileRequest struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Phone     string `json:"phone,omitempty"`
}
