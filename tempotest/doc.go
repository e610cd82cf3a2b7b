/*
Package tempotest provides mocks and doubles for testing extensions.

Everything in this package is intended for tests only. The doubles are
deterministic and do no cryptography, so fixtures stay readable.
*/
package tempotest
