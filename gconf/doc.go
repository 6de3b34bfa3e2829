/*
Package gconf provides a toolset for managing an extension configuration.

Each extension keeps a single configuration object in the database, under
the "_c:<package name>" key. The object is created from the genesis "conf"
section and can be patched later by the current owner.
*/
package gconf
