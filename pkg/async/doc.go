// Package async provides a small generic future for running independent
// computations concurrently and joining their results.
//
//	accounts := async.Run(ctx, client.Accounts)
//	txs := async.Run(ctx, func(ctx context.Context) ([]Transaction, error) {
//		return client.Transactions(ctx, filter)
//	})
//
//	a, err := accounts.Await(ctx)
//	...
//	t, err := txs.Await(ctx)
//
// Await honors the caller's context: a deadline aborts the wait with
// ErrTimeout while the underlying computation keeps running until its own
// context is done.
package async
