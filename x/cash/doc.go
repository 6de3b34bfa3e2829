/*
Package cash keeps the free balances of all accounts and provides the fund
transfer primitive used by other extensions.

There is no logic in the coins, except that the balance of any coin may not
go below zero. Every transfer is a plain store mutation, so it commits or
rolls back together with whatever else the transaction changed.
*/
package cash
