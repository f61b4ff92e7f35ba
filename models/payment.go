package models

import "math"

// DepositRate is the share of a service's price collected at booking time.
const DepositRate = 0.5

// PaymentIntentRequest is the body of POST /create-payment-intent.
type PaymentIntentRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"` // minor units (cents)
}

// PaymentIntentResponse carries the client secret used to drive the
// payment sheet on the client.
type PaymentIntentResponse struct {
	ClientSecret        string `json:"clientSecret"`
	MerchantDisplayName string `json:"merchantDisplayName,omitempty"`
}

// Deposit returns the booking fee for a listed price.
func Deposit(price float64) float64 {
	return price * DepositRate
}

// MinorUnits converts a decimal USD amount to integer cents.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
