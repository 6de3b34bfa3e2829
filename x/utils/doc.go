/*
Package utils contains decorators that are shared by every transaction
processed by the application, independent of the message type.
*/
package utils
