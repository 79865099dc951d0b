package ledger

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/sharveena123/paypals/internal/models"
)

func expense(id, paidBy string, amount int64) models.Expense {
	return models.Expense{ID: id, PaidBy: paidBy, Amount: amount}
}

func split(expenseID, member string, amount int64) models.ExpenseSplit {
	return models.ExpenseSplit{ExpenseID: expenseID, MemberKey: member, Amount: amount}
}

func settlement(id, from, to string, amount int64, status models.SettlementStatus) models.Settlement {
	return models.Settlement{ID: id, FromMember: from, ToMember: to, Amount: amount, Status: status}
}

func TestComputeBalances(t *testing.T) {
	members := []string{"alice", "bob", "carol", "dave"}

	tests := []struct {
		name        string
		expenses    []models.Expense
		splits      []models.ExpenseSplit
		settlements []models.Settlement
		wantErr     error
		want        Balances
	}{
		{
			name:     "single expense equal among four",
			expenses: []models.Expense{expense("e1", "alice", 15680)},
			splits: []models.ExpenseSplit{
				split("e1", "alice", 3920),
				split("e1", "bob", 3920),
				split("e1", "carol", 3920),
				split("e1", "dave", 3920),
			},
			want: Balances{
				PairOf("alice", "bob"):   3920,
				PairOf("alice", "carol"): 3920,
				PairOf("alice", "dave"):  3920,
			},
		},
		{
			name: "opposite expenses net against each other",
			expenses: []models.Expense{
				expense("e1", "alice", 1000),
				expense("e2", "bob", 400),
			},
			splits: []models.ExpenseSplit{
				split("e1", "bob", 1000),
				split("e2", "alice", 400),
			},
			want: Balances{
				PairOf("alice", "bob"): 600,
			},
		},
		{
			name:     "completed settlement clears debt",
			expenses: []models.Expense{expense("e1", "alice", 80000)},
			splits: []models.ExpenseSplit{
				split("e1", "alice", 20000),
				split("e1", "bob", 20000),
				split("e1", "carol", 20000),
				split("e1", "dave", 20000),
			},
			settlements: []models.Settlement{
				settlement("s1", "bob", "alice", 20000, models.SettlementCompleted),
			},
			want: Balances{
				PairOf("alice", "carol"): 20000,
				PairOf("alice", "dave"):  20000,
			},
		},
		{
			name:     "pending settlement does not net",
			expenses: []models.Expense{expense("e1", "alice", 1000)},
			splits:   []models.ExpenseSplit{split("e1", "bob", 1000)},
			settlements: []models.Settlement{
				settlement("s1", "bob", "alice", 1000, models.SettlementPending),
			},
			want: Balances{
				PairOf("alice", "bob"): 1000,
			},
		},
		{
			name:     "overpaying settlement flips the direction",
			expenses: []models.Expense{expense("e1", "alice", 1000)},
			splits:   []models.ExpenseSplit{split("e1", "bob", 1000)},
			settlements: []models.Settlement{
				settlement("s1", "bob", "alice", 1500, models.SettlementCompleted),
			},
			want: Balances{
				PairOf("alice", "bob"): -500,
			},
		},
		{
			name:     "split referencing unknown member fails",
			expenses: []models.Expense{expense("e1", "alice", 1000)},
			splits:   []models.ExpenseSplit{split("e1", "mallory", 1000)},
			wantErr:  ErrInvalidReference,
		},
		{
			name:     "split referencing unknown expense fails",
			expenses: []models.Expense{expense("e1", "alice", 1000)},
			splits:   []models.ExpenseSplit{split("e999", "bob", 1000)},
			wantErr:  ErrInvalidReference,
		},
		{
			name:     "expense with unknown payer fails",
			expenses: []models.Expense{expense("e1", "mallory", 1000)},
			wantErr:  ErrInvalidReference,
		},
		{
			name: "settlement with unknown member fails",
			settlements: []models.Settlement{
				settlement("s1", "mallory", "alice", 1000, models.SettlementCompleted),
			},
			wantErr: ErrInvalidReference,
		},
		{
			name:     "fully settled pair is dropped",
			expenses: []models.Expense{expense("e1", "alice", 1000)},
			splits:   []models.ExpenseSplit{split("e1", "bob", 1000)},
			settlements: []models.Settlement{
				settlement("s1", "bob", "alice", 1000, models.SettlementCompleted),
			},
			want: Balances{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeBalances(members, tt.expenses, tt.splits, tt.settlements)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ComputeBalances error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ComputeBalances failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d pairs, want %d: %v", len(got), len(tt.want), got)
			}
			for p, v := range tt.want {
				if got[p] != v {
					t.Errorf("pair %v = %d, want %d", p, got[p], v)
				}
			}
		})
	}
}

func TestComputeBalancesOrderIndependent(t *testing.T) {
	members := []string{"alice", "bob", "carol"}
	expenses := []models.Expense{
		expense("e1", "alice", 3000),
		expense("e2", "bob", 1500),
		expense("e3", "carol", 900),
	}
	splits := []models.ExpenseSplit{
		split("e1", "alice", 1000), split("e1", "bob", 1000), split("e1", "carol", 1000),
		split("e2", "alice", 750), split("e2", "carol", 750),
		split("e3", "bob", 450), split("e3", "alice", 450),
	}
	settlements := []models.Settlement{
		settlement("s1", "bob", "alice", 500, models.SettlementCompleted),
		settlement("s2", "carol", "alice", 250, models.SettlementCompleted),
	}

	want, err := ComputeBalances(members, expenses, splits, settlements)
	if err != nil {
		t.Fatalf("ComputeBalances failed: %v", err)
	}

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		rng.Shuffle(len(expenses), func(a, b int) { expenses[a], expenses[b] = expenses[b], expenses[a] })
		rng.Shuffle(len(splits), func(a, b int) { splits[a], splits[b] = splits[b], splits[a] })
		rng.Shuffle(len(settlements), func(a, b int) { settlements[a], settlements[b] = settlements[b], settlements[a] })

		got, err := ComputeBalances(members, expenses, splits, settlements)
		if err != nil {
			t.Fatalf("ComputeBalances failed: %v", err)
		}
		if len(got) != len(want) {
			t.Fatalf("permutation %d: %d pairs, want %d", i, len(got), len(want))
		}
		for p, v := range want {
			if got[p] != v {
				t.Fatalf("permutation %d: pair %v = %d, want %d", i, p, got[p], v)
			}
		}
	}
}

func TestBalancesMerge(t *testing.T) {
	a := Balances{PairOf("alice", "bob"): 500, PairOf("alice", "carol"): 200}
	b := Balances{PairOf("alice", "bob"): -500, PairOf("bob", "carol"): 100}

	a.Merge(b)

	if _, ok := a[PairOf("alice", "bob")]; ok {
		t.Error("fully netted pair should be removed after merge")
	}
	if a[PairOf("alice", "carol")] != 200 {
		t.Errorf("alice/carol = %d, want 200", a[PairOf("alice", "carol")])
	}
	if a[PairOf("bob", "carol")] != 100 {
		t.Errorf("bob/carol = %d, want 100", a[PairOf("bob", "carol")])
	}
}

func TestSimplifyDebts(t *testing.T) {
	// alice is owed 30 by bob and 20 by carol; dave owes alice nothing.
	balances := Balances{
		PairOf("alice", "bob"):   3000,
		PairOf("alice", "carol"): 2000,
	}

	edges := SimplifyDebts(balances)
	if len(edges) != 2 {
		t.Fatalf("got %d edges, want 2: %v", len(edges), edges)
	}

	var total int64
	for _, e := range edges {
		if e.To != "alice" {
			t.Errorf("edge %v should pay alice", e)
		}
		total += e.Amount
	}
	if total != 5000 {
		t.Errorf("edges total %d, want 5000", total)
	}
}

func TestSimplifyDebtsChain(t *testing.T) {
	// bob owes alice 10, carol owes bob 10: one transfer from carol to
	// alice plus the residue should settle everyone.
	balances := Balances{
		PairOf("alice", "bob"): 1000,
		PairOf("bob", "carol"): 1000,
	}

	edges := SimplifyDebts(balances)

	net := map[string]int64{}
	for p, v := range balances {
		net[p.A] += v
		net[p.B] -= v
	}
	for _, e := range edges {
		net[e.From] += e.Amount
		net[e.To] -= e.Amount
	}
	for k, v := range net {
		if v != 0 {
			t.Errorf("member %q left with net %d after simplification", k, v)
		}
	}
	if len(edges) != 1 {
		t.Errorf("got %d edges, want 1 (carol pays alice)", len(edges))
	}
}
