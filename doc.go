/*
Package tempo defines the common interfaces that tie the repository
together: addresses and conditions for identity, the message/handler
pair that expresses state transitions, context accessors for the
per-call environment (chain id, height, block time) and the key-value
store contracts every component persists through.

The root package holds no business logic. Extensions under x/ implement
the actual ledgers and are wired together through the small set of
interfaces declared here.
*/
package tempo
