// Package testutil contains helper builders and utilities used across tests
// to reduce boilerplate when constructing model replies, transcripts and
// log assertions. They are not intended for production usage.
package testutil
