/*
Package crypto provides ed25519 identities. The public key of an identity is
turned into a paylock.Condition, and the condition into the account
address.
*/
package crypto
