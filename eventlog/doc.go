/*
Package eventlog keeps an append-only history of the events emitted by
committed transactions.

Handlers return their events in the DeliverResult. The Decorator appends them
to the log using the same store as the transaction, so an event is persisted
if and only if the state change that produced it is persisted. Each event is
indexed by the addresses it concerns, which allows to list the history of a
single account.
*/
package eventlog
