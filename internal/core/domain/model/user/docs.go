// Package user holds the account aggregate and the Role enumeration that
// credentials carry.
package user
