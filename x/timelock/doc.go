/*
Package timelock implements an escrow of funds that are released to the
receiver only after an unlock time.

A payer commits a payment to a receiver. The amount is moved from the payer
account into the custody account and stays there until either the receiver
claims it, which is possible once the unlock time is reached, or the payer
cancels it. Cancellation is possible only up to the configured notice period
before the unlock time.

All fund moving operations are rejected while the pause switch is engaged.
*/
package timelock
