package models

import "testing"

func TestTradeValidate_TableDriven(t *testing.T) {
	cases := []struct {
		name    string
		trade   Trade
		wantErr bool
	}{
		{
			name:  "valid IRS",
			trade: Trade{TradeID: "T1", Counterparty: "CP_A", Product: ProductIRS, Notional: 1e6, Currency: "USD", IRS: &IRSLeg{TenorYears: 5, PayFixed: true}},
		},
		{
			name:  "valid FX forward",
			trade: Trade{TradeID: "T2", Counterparty: "CP_B", Product: ProductFXFwd, Notional: 2e6, Currency: "USD", FX: &FXLeg{Pair: "EURUSD", Side: SideBuy}},
		},
		{
			name:    "IRS without leg",
			trade:   Trade{TradeID: "T3", Counterparty: "CP_A", Product: ProductIRS},
			wantErr: true,
		},
		{
			name:    "IRS zero tenor",
			trade:   Trade{TradeID: "T4", Counterparty: "CP_A", Product: ProductIRS, IRS: &IRSLeg{TenorYears: 0}},
			wantErr: true,
		},
		{
			name:    "FX without leg",
			trade:   Trade{TradeID: "T5", Counterparty: "CP_B", Product: ProductFXFwd},
			wantErr: true,
		},
		{
			name:    "FX bad pair length",
			trade:   Trade{TradeID: "T6", Counterparty: "CP_B", Product: ProductFXFwd, FX: &FXLeg{Pair: "EUR", Side: SideBuy}},
			wantErr: true,
		},
		{
			name:    "FX bad side",
			trade:   Trade{TradeID: "T7", Counterparty: "CP_B", Product: ProductFXFwd, FX: &FXLeg{Pair: "EURUSD", Side: "HOLD"}},
			wantErr: true,
		},
		{
			name:    "unknown product",
			trade:   Trade{TradeID: "T8", Counterparty: "CP_C", Product: "SWAPTION"},
			wantErr: true,
		},
		{
			name:    "empty trade id",
			trade:   Trade{Counterparty: "CP_A", Product: ProductIRS, IRS: &IRSLeg{TenorYears: 2}},
			wantErr: true,
		},
		{
			name:    "empty cpty",
			trade:   Trade{TradeID: "T9", Product: ProductIRS, IRS: &IRSLeg{TenorYears: 2}},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.trade.Validate()
			if tc.wantErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
		})
	}
}
