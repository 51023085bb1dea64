package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/Evgen-Mutagen/online-banking/internal/model"
	"github.com/Evgen-Mutagen/online-banking/internal/repository"
	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestRunningBalancePrefixSums(t *testing.T) {
	txs := repository.SeedTransactions()

	rows := RunningBalance(d("3287.42"), txs)

	want := []string{"3233.19", "5533.19", "5444.07"}
	if len(rows) != len(want) {
		t.Fatalf("rows = %d, want %d", len(rows), len(want))
	}
	for i, w := range want {
		if !rows[i].Running.Equal(d(w)) {
			t.Errorf("row %d running = %s, want %s", i, rows[i].Running, w)
		}
		if rows[i].ID != txs[i].ID {
			t.Errorf("row %d id = %s, want %s", i, rows[i].ID, txs[i].ID)
		}
	}
	if rows[0].Kind != model.KindDebit || rows[1].Kind != model.KindCredit {
		t.Fatalf("kinds = %s, %s", rows[0].Kind, rows[1].Kind)
	}
}

func TestRunningBalanceTruncatesToTwenty(t *testing.T) {
	var txs []*model.Transaction
	for i := 0; i < 25; i++ {
		txs = append(txs, &model.Transaction{
			ID:     fmt.Sprintf("t%d", i),
			Amount: d("0.10"),
		})
	}

	rows := RunningBalance(d("1"), txs)
	if len(rows) != MaxRecentTransactions {
		t.Fatalf("rows = %d, want %d", len(rows), MaxRecentTransactions)
	}

	sum := d("1")
	for i, r := range rows {
		sum = sum.Add(txs[i].Amount)
		if !r.Running.Equal(sum) {
			t.Fatalf("row %d running = %s, want %s", i, r.Running, sum)
		}
	}
	if !rows[19].Running.Equal(d("3")) {
		t.Fatalf("last running = %s, want exactly 3", rows[19].Running)
	}
}

func TestRunningBalanceEmpty(t *testing.T) {
	if rows := RunningBalance(d("10"), nil); len(rows) != 0 {
		t.Fatalf("rows = %d", len(rows))
	}
}

func TestLedgerSeedsFromAccount(t *testing.T) {
	store := repository.NewSeededStore()
	ledger := NewLedgerService(store, store)
	ctx := context.Background()

	rows, err := ledger.Ledger(ctx, "sav")
	if err != nil {
		t.Fatal(err)
	}
	if !rows[0].Running.Equal(d("11990.90")) {
		t.Fatalf("first running = %s", rows[0].Running)
	}

	rows, err = ledger.Ledger(ctx, "missing")
	if err != nil {
		t.Fatal(err)
	}
	if !rows[0].Running.Equal(d("-54.23")) {
		t.Fatalf("unknown account should seed from zero, got %s", rows[0].Running)
	}
}
