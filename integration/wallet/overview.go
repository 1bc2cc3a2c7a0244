package wallet

import (
	"context"

	"github.com/finwallet/walletkit/pkg/async"
	"github.com/finwallet/walletkit/pkg/money"
)

const overviewTransactionLimit = 5

// Overview is the home screen aggregate: balances, the most recent
// transactions and unread notifications, fetched in one shot.
type Overview struct {
	Accounts      []Account
	Transactions  []Transaction
	Notifications []Notification
}

// TotalBalance sums account balances. Mixed currencies are summed as-is;
// the backend keeps all accounts of one user in one currency.
func (o Overview) TotalBalance() money.Amount {
	var total money.Amount
	for _, acc := range o.Accounts {
		total += acc.Balance
	}
	return total
}

// UnreadCount counts unread notifications.
func (o Overview) UnreadCount() int {
	count := 0
	for _, n := range o.Notifications {
		if !n.Read {
			count++
		}
	}
	return count
}

// FetchOverview loads the home screen data with the three backend calls
// running concurrently. The first failure wins; an authorization failure
// on any call tears down the session once, the other calls then fail
// fast.
func (c *Client) FetchOverview(ctx context.Context) (Overview, error) {
	accounts := async.Run(ctx, c.Accounts)
	transactions := async.Run(ctx, func(ctx context.Context) ([]Transaction, error) {
		return c.Transactions(ctx, TransactionFilter{Limit: overviewTransactionLimit})
	})
	notifications := async.Run(ctx, c.Notifications)

	var (
		overview Overview
		err      error
	)
	if overview.Accounts, err = accounts.Await(ctx); err != nil {
		return Overview{}, err
	}
	if overview.Transactions, err = transactions.Await(ctx); err != nil {
		return Overview{}, err
	}
	if overview.Notifications, err = notifications.Await(ctx); err != nil {
		return Overview{}, err
	}
	return overview, nil
}
