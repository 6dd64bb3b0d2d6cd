// Package customer contains the Customer aggregate: a named owner of refill
// orders identified for humans by a normalized phone number.
package customer
