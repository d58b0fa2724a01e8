package model

import "testing"

func TestParseKind(t *testing.T) {
	tests := []struct {
		input    string
		expected Kind
		wantErr  bool
	}{
		{"deposit", KindDeposit, false},
		{"withdrawal", KindWithdrawal, false},
		{"dispute", KindDispute, false},
		{"resolve", KindResolve, false},
		{"chargeback", KindChargeback, false},
		{"Deposit", KindDeposit, false},
		{"CHARGEBACK", KindChargeback, false},
		{" withdrawal ", KindWithdrawal, false},
		{"transfer", KindUnknown, true},
		{"", KindUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseKind(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseKind(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseKind(%q) failed: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseKind(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	kinds := []Kind{KindDeposit, KindWithdrawal, KindDispute, KindResolve, KindChargeback}
	for _, k := range kinds {
		parsed, err := ParseKind(k.String())
		if err != nil {
			t.Errorf("ParseKind(%q) failed: %v", k.String(), err)
		}
		if parsed != k {
			t.Errorf("round trip for %v gave %v", k, parsed)
		}
	}
}

func TestConstructors(t *testing.T) {
	t.Run("deposit carries amount", func(t *testing.T) {
		tx := NewDeposit(7, 42, 255000)
		if tx.Kind != KindDeposit || tx.Client != 7 || tx.TX != 42 {
			t.Errorf("unexpected fields: %+v", tx)
		}
		if !tx.AmountSet || tx.Amount != 255000 {
			t.Errorf("amount not carried: %+v", tx)
		}
	})

	t.Run("withdrawal carries amount", func(t *testing.T) {
		tx := NewWithdrawal(7, 43, 100000)
		if !tx.AmountSet || tx.Amount != 100000 {
			t.Errorf("amount not carried: %+v", tx)
		}
	})

	t.Run("reference kinds carry no amount", func(t *testing.T) {
		for _, tx := range []Transaction{
			NewDispute(7, 42),
			NewResolve(7, 42),
			NewChargeback(7, 42),
		} {
			if tx.AmountSet {
				t.Errorf("%v should not carry an amount", tx.Kind)
			}
		}
	})
}

func TestKindHasAmount(t *testing.T) {
	if !KindDeposit.HasAmount() || !KindWithdrawal.HasAmount() {
		t.Error("deposit and withdrawal must carry amounts")
	}
	for _, k := range []Kind{KindDispute, KindResolve, KindChargeback} {
		if k.HasAmount() {
			t.Errorf("%v must not carry an amount", k)
		}
	}
}
