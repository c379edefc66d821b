package calculator

import (
	"reflect"
	"testing"
)

func TestOptimizeTransfers(t *testing.T) {
	tests := []struct {
		name     string
		balances map[string]int64
		want     []Transfer
	}{
		{
			name:     "two debtors one creditor",
			balances: map[string]int64{"alice": 666, "bob": -333, "carol": -333},
			want: []Transfer{
				{FromUserID: "bob", ToUserID: "alice", AmountPaisa: 333},
				{FromUserID: "carol", ToUserID: "alice", AmountPaisa: 333},
			},
		},
		{
			name:     "after partial settlement",
			balances: map[string]int64{"alice": 333, "carol": -333},
			want: []Transfer{
				{FromUserID: "carol", ToUserID: "alice", AmountPaisa: 333},
			},
		},
		{
			name:     "largest debtor pays largest creditor first",
			balances: map[string]int64{"a": 700, "b": 300, "c": -600, "d": -400},
			want: []Transfer{
				{FromUserID: "c", ToUserID: "a", AmountPaisa: 600},
				{FromUserID: "d", ToUserID: "a", AmountPaisa: 100},
				{FromUserID: "d", ToUserID: "b", AmountPaisa: 300},
			},
		},
		{
			name:     "equal magnitudes break ties by user id",
			balances: map[string]int64{"zoe": -100, "amy": -100, "pat": 200},
			want: []Transfer{
				{FromUserID: "amy", ToUserID: "pat", AmountPaisa: 100},
				{FromUserID: "zoe", ToUserID: "pat", AmountPaisa: 100},
			},
		},
		{
			name:     "settled users are skipped",
			balances: map[string]int64{"alice": 0, "bob": 0},
			want:     nil,
		},
		{
			name:     "empty balances",
			balances: map[string]int64{},
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OptimizeTransfers(tt.balances)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("OptimizeTransfers() = %v, want %v", got, tt.want)
			}
		})
	}
}

// applyTransfers executes a plan against a copy of the balances and returns
// the result, mirroring what recording each transfer as a settlement and
// recomputing would do.
func applyTransfers(balances map[string]int64, transfers []Transfer) map[string]int64 {
	out := make(map[string]int64, len(balances))
	for userID, b := range balances {
		out[userID] = b
	}
	for _, tr := range transfers {
		out[tr.FromUserID] += tr.AmountPaisa
		out[tr.ToUserID] -= tr.AmountPaisa
	}
	return out
}

func TestOptimizeTransfersZeroesAllBalances(t *testing.T) {
	cases := []map[string]int64{
		{"alice": 666, "bob": -333, "carol": -333},
		{"a": 700, "b": 300, "c": -600, "d": -400},
		{"a": 1, "b": -1},
		{"a": 99999, "b": -33333, "c": -33333, "d": -33333},
		{"a": 5, "b": 5, "c": 5, "d": -15},
	}

	for _, balances := range cases {
		transfers := OptimizeTransfers(balances)

		for _, tr := range transfers {
			if tr.AmountPaisa <= 0 {
				t.Errorf("plan for %v contains non-positive transfer %v", balances, tr)
			}
		}

		nonzero := 0
		for _, b := range balances {
			if b != 0 {
				nonzero++
			}
		}
		if len(transfers) > nonzero-1 {
			t.Errorf("plan for %v has %d transfers, want at most %d", balances, len(transfers), nonzero-1)
		}

		settled := applyTransfers(balances, transfers)
		for userID, b := range settled {
			if b != 0 {
				t.Errorf("plan for %v leaves %s at %d", balances, userID, b)
			}
		}
	}
}

func TestOptimizeAfterRecordingPlanAsSettlements(t *testing.T) {
	expenses := []Expense{
		{PayerID: "alice", AmountPaisa: 1000, Shares: []Share{
			{UserID: "alice", AmountPaisa: 334},
			{UserID: "bob", AmountPaisa: 333},
			{UserID: "carol", AmountPaisa: 333},
		}},
		{PayerID: "bob", AmountPaisa: 450, Shares: []Share{
			{UserID: "bob", AmountPaisa: 225},
			{UserID: "carol", AmountPaisa: 225},
		}},
	}

	balances, err := NetBalances(expenses, nil)
	if err != nil {
		t.Fatalf("NetBalances() failed: %v", err)
	}

	var settlements []Settlement
	for _, tr := range OptimizeTransfers(balances) {
		settlements = append(settlements, Settlement{
			FromUserID:  tr.FromUserID,
			ToUserID:    tr.ToUserID,
			AmountPaisa: tr.AmountPaisa,
		})
	}

	after, err := NetBalances(expenses, settlements)
	if err != nil {
		t.Fatalf("NetBalances() after plan failed: %v", err)
	}
	for userID, b := range after {
		if b != 0 {
			t.Errorf("balance[%s] = %d after executing plan, want 0", userID, b)
		}
	}
	if rest := OptimizeTransfers(after); len(rest) != 0 {
		t.Errorf("expected empty plan after settling, got %v", rest)
	}
}
