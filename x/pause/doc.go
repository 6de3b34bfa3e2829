/*
Package pause implements an administrative switch that, when engaged, makes
all fund moving operations fail with ErrPaused.

Only the owner, as tracked by the owner extension, can engage or release the
switch. Pausing an already paused system, or unpausing a running one, is an
invalid state transition.
*/
package pause
