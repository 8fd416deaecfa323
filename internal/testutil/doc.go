// Package testutil contains helper builders used across tests to reduce
// boilerplate when constructing message histories. The helpers are
// intentionally minimal and not intended for production usage.
package testutil
