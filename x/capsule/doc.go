/*
Package capsule implements a commit-reveal escrow.

A capsule binds a digest commitment to an optional value deposit and a
future unlock time. Before the unlock time the creator may cancel it or
push the unlock time further into the future. Once the unlock time
passes, the creator (or the beneficiary when one is set) reveals the
hidden payload by supplying the pre-image of the commitment, and the
deposit is credited to the payout receiver.

Capsule transitions never move value directly. Deposits enter the
system through the treasury at creation and leave it only through the
payout extension, which the capsule handlers credit on cancel and
reveal.
*/
package capsule
