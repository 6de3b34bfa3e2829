/*
Package paylocktest provides test doubles and helpers shared by the tests of
all paylock packages.

Nothing in here should be imported by production code.
*/
package paylocktest
