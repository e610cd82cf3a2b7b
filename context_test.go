package tempo

import (
	"context"
	"testing"
	"time"
)

func TestChainID(t *testing.T) {
	valid := []string{"foobar", "chain-001", "test_net_7", "ABC123_-xyz"}
	for _, s := range valid {
		if !IsValidChainID(s) {
			t.Errorf("%q must be a valid chain id", s)
		}
	}
	invalid := []string{"", "short", "way-too-long-for-a-chain-identifier", "sp ace", "bad/char"}
	for _, s := range invalid {
		if IsValidChainID(s) {
			t.Errorf("%q must not be a valid chain id", s)
		}
	}

	ctx := WithChainID(context.Background(), "my-chain-1")
	if got := GetChainID(ctx); got != "my-chain-1" {
		t.Fatalf("got chain id %q", got)
	}
}

func TestBlockTime(t *testing.T) {
	if _, err := BlockTime(context.Background()); err == nil {
		t.Fatal("want an error when block time is not set")
	}

	now := time.Now()
	ctx := WithBlockTime(context.Background(), now)
	got, err := BlockTime(ctx)
	if err != nil {
		t.Fatalf("block time: %+v", err)
	}
	if !got.Equal(now) {
		t.Fatalf("want %v, got %v", now, got)
	}
}

func TestIsExpired(t *testing.T) {
	now := AsUnixTime(time.Now())
	ctx := WithBlockTime(context.Background(), now.Time())

	if !IsExpired(ctx, now.Add(-time.Minute)) {
		t.Error("the past must be expired")
	}
	if !IsExpired(ctx, now) {
		t.Error("expiration is inclusive of the current time")
	}
	if IsExpired(ctx, now.Add(time.Minute)) {
		t.Error("the future must not be expired")
	}
}

func TestInTheFuture(t *testing.T) {
	now := AsUnixTime(time.Now())
	ctx := WithBlockTime(context.Background(), now.Time())

	if !InTheFuture(ctx, now.Add(time.Minute)) {
		t.Error("a later time must be in the future")
	}
	if InTheFuture(ctx, now) {
		t.Error("the current time is not in the future")
	}
	if InTheFuture(ctx, now.Add(-time.Minute)) {
		t.Error("the past is not in the future")
	}
}

func TestIsExpiredRequiresBlockTime(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	IsExpired(context.Background(), AsUnixTime(time.Now()))
}
