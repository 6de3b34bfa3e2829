/*
Package app contains the building blocks of an application: the Router
dispatching messages to handlers, the decorator chain and the Engine that
serializes transactions against the committed state.
*/
package app
