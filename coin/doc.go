/*
Package coin defines the value unit of the ledger. A Coin is an integer amount
of the smallest indivisible unit of a currency identified by its ticker.
Coins is a normalized (sorted, no zero values) set of coins of different
currencies, as held by a wallet.
*/
package coin
