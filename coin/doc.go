/*
Package coin provides a fixed point representation of money amounts.

A Coin stores up to 10^15 whole units with 9 decimal digits of
precision and carries a currency ticker. Arithmetic is explicit and
returns errors on overflow or when tickers do not match.
*/
package coin
