/*
Package payout implements the withdrawal credit ledger.

Other extensions never transfer value to a party directly. Instead they
credit the party's balance here and the party later claims it with a
withdraw message. This pull-payment split keeps external transfers out
of state transitions: the only operation that calls external code is
the withdrawal itself, and it is serialized and restores the balance
when the transfer fails.
*/
package payout
