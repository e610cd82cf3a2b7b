/*
Package errors implements the coded errors used across the repository.

Every failure is built from a registered root error. Root errors carry
a numeric code and a short description. Runtime errors are created by
wrapping a root error with additional context. Tests and callers match
errors against their root using the Is method, never by string
comparison.

Extension packages register their own root errors in a code range that
must not clash with the ones declared here.
*/
package errors
