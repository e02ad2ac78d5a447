package coinpnl

import "testing"

func TestParseOperation(t *testing.T) {
	tests := []struct {
		in      string
		want    Operation
		wantErr bool
	}{
		{in: "Buy", want: OpBuy},
		{in: "Transaction Buy", want: OpBuy},
		{in: "Transaction Revenue", want: OpBuy},
		{in: "Sell", want: OpSell},
		{in: "Transaction Sold", want: OpSell},
		{in: "Transaction Spend", want: OpSell},
		{in: "Transaction Related", want: OpSell},
		{in: "Fee", want: OpFee},
		{in: "Deposit", want: OpDeposit},
		{in: "Withdraw", want: OpWithdraw},
		{in: "Distribution", want: OpDistribution},
		{in: "Savings Distribution", want: OpSavingsDistribution},
		{in: "BNB Vault Rewards", want: OpBnbVaultRewards},
		{in: "Buy Crypto", want: OpBuyCrypto},
		{in: "Cashback Voucher", want: OpCashbackVoucher},
		{in: "Commission Rebate", want: OpCommissionRebate},
		{in: "Fiat Deposit", want: OpFiatDeposit},
		{in: "Simple Earn Flexible Subscription", want: OpEarnSubscription},
		{in: "Simple Earn Flexible Redemption", want: OpEarnRedemption},
		{in: "Simple Earn Flexible Interest", want: OpEarnInterest},
		{in: "Small Assets Exchange BNB", want: OpSmallAssetsExchange},
		{in: "Auto-Invest Transaction", want: OpAutoInvest},
		{in: "Convert", want: OpConvert},
		{in: "Margin Repayment", wantErr: true},
		{in: "buy", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseOperation(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseOperation(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseOperation(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParseAccountType(t *testing.T) {
	tests := []struct {
		in      string
		want    AccountType
		wantErr bool
	}{
		{in: "Spot", want: AccountSpot},
		{in: "SPOT", want: AccountSpot},
		{in: "spot", want: AccountSpot},
		{in: "Earn", want: AccountEarn},
		{in: "Funding", want: AccountFunding},
		{in: "Card", want: AccountCard},
		{in: "Margin", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseAccountType(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseAccountType(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseAccountType(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
