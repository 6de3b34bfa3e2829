/*
Package owner keeps track of the single account that is allowed to run
privileged operations, such as engaging the pause switch or transferring the
ownership itself.

The owner is set from the genesis file. Ownership can be given away at any
time by the current owner, which emits an OwnershipTransferred event. No
history of previous owners is kept other than the events.
*/
package owner
