// Package money represents wallet amounts as integer minor units (cents)
// to keep arithmetic exact, with parsing from user decimal input and
// currency-aware formatting for display.
//
//	amount, err := money.ParseAmount("12.34") // 1234 cents
//	if err := amount.Validate(); err != nil {
//		// non-positive input rejected before any network call
//	}
//	label, _ := money.Format(amount, "USD") // "$12.34"
//
// Only two-decimal currencies are supported, which covers everything the
// wallet backend deals in.
package money
