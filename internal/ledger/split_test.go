package ledger

import (
	"errors"
	"testing"
)

func TestAllocateSplit(t *testing.T) {
	tests := []struct {
		name         string
		amount       int64
		method       Method
		participants []string
		params       Params
		wantErr      error
		want         []int64 // expected amounts in participant order
	}{
		{
			name:         "equal split divides evenly",
			amount:       15680, // 156.80 among 4 -> 39.20 each
			method:       MethodEqual,
			participants: []string{"alice", "bob", "carol", "dave"},
			want:         []int64{3920, 3920, 3920, 3920},
		},
		{
			name:         "equal split assigns extra cent to first by input order",
			amount:       10000, // 100.00 among 3 -> 33.34, 33.33, 33.33
			method:       MethodEqual,
			participants: []string{"alice", "bob", "carol"},
			want:         []int64{3334, 3333, 3333},
		},
		{
			name:         "equal split two cents left over",
			amount:       1001, // 10.01 among 3
			method:       MethodEqual,
			participants: []string{"alice", "bob", "carol"},
			want:         []int64{334, 334, 333},
		},
		{
			name:         "exact split matching total",
			amount:       5000,
			method:       MethodExact,
			participants: []string{"alice", "bob"},
			params:       Params{Exact: map[string]int64{"alice": 3000, "bob": 2000}},
			want:         []int64{3000, 2000},
		},
		{
			name:         "exact split one cent short is corrected",
			amount:       1000,
			method:       MethodExact,
			participants: []string{"alice", "bob"},
			params:       Params{Exact: map[string]int64{"alice": 500, "bob": 499}},
			want:         []int64{501, 499},
		},
		{
			name:         "exact split beyond tolerance rejected",
			amount:       5000, // inputs sum to 40.00 against a 50.00 expense
			method:       MethodExact,
			participants: []string{"alice", "bob"},
			params:       Params{Exact: map[string]int64{"alice": 2000, "bob": 2000}},
			wantErr:      ErrSplitMismatch,
		},
		{
			name:         "percentage split",
			amount:       20000,
			method:       MethodPercentage,
			participants: []string{"alice", "bob", "carol"},
			params:       Params{Percentages: map[string]float64{"alice": 50, "bob": 25, "carol": 25}},
			want:         []int64{10000, 5000, 5000},
		},
		{
			name:         "percentage split with rounding drift",
			amount:       1000, // thirds of 10.00
			method:       MethodPercentage,
			participants: []string{"alice", "bob", "carol"},
			params: Params{Percentages: map[string]float64{
				"alice": 33.33, "bob": 33.33, "carol": 33.34,
			}},
			want: []int64{334, 333, 333},
		},
		{
			name:         "percentages not summing to 100 rejected",
			amount:       1000,
			method:       MethodPercentage,
			participants: []string{"alice", "bob"},
			params:       Params{Percentages: map[string]float64{"alice": 60, "bob": 50}},
			wantErr:      ErrSplitMismatch,
		},
		{
			name:         "shares split by weight",
			amount:       9000,
			method:       MethodShares,
			participants: []string{"alice", "bob", "carol"},
			params:       Params{Weights: map[string]int64{"alice": 2, "bob": 1, "carol": 1}},
			want:         []int64{4500, 2250, 2250},
		},
		{
			name:         "shares split with remainder",
			amount:       1000,
			method:       MethodShares,
			participants: []string{"alice", "bob", "carol"},
			params:       Params{Weights: map[string]int64{"alice": 1, "bob": 1, "carol": 1}},
			want:         []int64{334, 333, 333},
		},
		{
			name:         "zero amount rejected",
			amount:       0,
			method:       MethodEqual,
			participants: []string{"alice"},
			wantErr:      ErrInvalidAmount,
		},
		{
			name:         "negative amount rejected",
			amount:       -100,
			method:       MethodEqual,
			participants: []string{"alice"},
			wantErr:      ErrInvalidAmount,
		},
		{
			name:         "no participants rejected",
			amount:       100,
			method:       MethodEqual,
			participants: nil,
			wantErr:      ErrNoParticipants,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := AllocateSplit(tt.amount, tt.method, tt.participants, tt.params)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("AllocateSplit error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("AllocateSplit failed: %v", err)
			}
			if len(shares) != len(tt.want) {
				t.Fatalf("got %d shares, want %d", len(shares), len(tt.want))
			}
			var sum int64
			for i, s := range shares {
				if s.MemberKey != tt.participants[i] {
					t.Errorf("share %d member = %q, want %q", i, s.MemberKey, tt.participants[i])
				}
				if s.Amount != tt.want[i] {
					t.Errorf("share %d amount = %d, want %d", i, s.Amount, tt.want[i])
				}
				sum += s.Amount
			}
			if sum != tt.amount {
				t.Errorf("shares sum to %d, want exactly %d", sum, tt.amount)
			}
		})
	}
}

func TestAllocateSplitDeterministic(t *testing.T) {
	participants := []string{"dave", "alice", "carol", "bob"}
	first, err := AllocateSplit(1003, MethodEqual, participants, Params{})
	if err != nil {
		t.Fatalf("AllocateSplit failed: %v", err)
	}
	for i := 0; i < 100; i++ {
		again, err := AllocateSplit(1003, MethodEqual, participants, Params{})
		if err != nil {
			t.Fatalf("AllocateSplit failed: %v", err)
		}
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("run %d differs at %d: %+v vs %+v", i, j, again[j], first[j])
			}
		}
	}
}

func TestAllocateSplitSumsExactly(t *testing.T) {
	// Awkward amounts against awkward participant counts must still sum
	// exactly with shares differing by at most one cent (EQUAL).
	amounts := []int64{1, 99, 100, 101, 9999, 10001, 123457}
	for n := 1; n <= 9; n++ {
		participants := make([]string, n)
		for i := range participants {
			participants[i] = string(rune('a' + i))
		}
		for _, amount := range amounts {
			shares, err := AllocateSplit(amount, MethodEqual, participants, Params{})
			if err != nil {
				t.Fatalf("AllocateSplit(%d, %d participants) failed: %v", amount, n, err)
			}
			var sum, min, max int64
			min, max = shares[0].Amount, shares[0].Amount
			for _, s := range shares {
				sum += s.Amount
				if s.Amount < min {
					min = s.Amount
				}
				if s.Amount > max {
					max = s.Amount
				}
			}
			if sum != amount {
				t.Errorf("amount %d over %d: sum %d", amount, n, sum)
			}
			if max-min > 1 {
				t.Errorf("amount %d over %d: shares differ by %d cents", amount, n, max-min)
			}
		}
	}
}

func TestAllocateSplitRejectsDuplicates(t *testing.T) {
	_, err := AllocateSplit(1000, MethodEqual, []string{"alice", "bob", "alice"}, Params{})
	if err == nil {
		t.Fatal("expected error for duplicate participant")
	}
}
