package coinpnl

import (
	"fmt"
	"strings"
)

// Operation is the kind of a single raw account change, as reported in
// the exchange export.
type Operation int

const (
	OpBuy Operation = iota
	OpSell
	OpFee
	OpDeposit
	OpWithdraw
	OpDistribution
	OpSavingsDistribution
	OpBnbVaultRewards
	OpBuyCrypto
	OpCashbackVoucher
	OpCommissionRebate
	OpFiatDeposit
	OpEarnSubscription
	OpEarnRedemption
	OpEarnInterest
	OpSmallAssetsExchange
	OpAutoInvest
	OpConvert
)

var operationNames = map[Operation]string{
	OpBuy:                 "Buy",
	OpSell:                "Sell",
	OpFee:                 "Fee",
	OpDeposit:             "Deposit",
	OpWithdraw:            "Withdraw",
	OpDistribution:        "Distribution",
	OpSavingsDistribution: "Savings Distribution",
	OpBnbVaultRewards:     "BNB Vault Rewards",
	OpBuyCrypto:           "Buy Crypto",
	OpCashbackVoucher:     "Cashback Voucher",
	OpCommissionRebate:    "Commission Rebate",
	OpFiatDeposit:         "Fiat Deposit",
	OpEarnSubscription:    "Simple Earn Flexible Subscription",
	OpEarnRedemption:      "Simple Earn Flexible Redemption",
	OpEarnInterest:        "Simple Earn Flexible Interest",
	OpSmallAssetsExchange: "Small Assets Exchange BNB",
	OpAutoInvest:          "Auto-Invest Transaction",
	OpConvert:             "Convert",
}

// Several export vocabularies map onto the same operation. The extra
// "Transaction *" spellings appear in newer exports for spot trades.
var operationAliases = map[string]Operation{
	"Buy":                 OpBuy,
	"Transaction Buy":     OpBuy,
	"Transaction Revenue": OpBuy,
	"Sell":                OpSell,
	"Transaction Sold":    OpSell,
	"Transaction Spend":   OpSell,
	"Transaction Related": OpSell,
}

// ParseOperation maps an export operation string onto its Operation.
// Unknown operations are an error, they would silently corrupt the
// accounting if skipped.
func ParseOperation(s string) (Operation, error) {
	if op, ok := operationAliases[s]; ok {
		return op, nil
	}
	for op, name := range operationNames {
		if name == s {
			return op, nil
		}
	}
	return 0, fmt.Errorf("unknown operation %q", s)
}

func (op Operation) String() string {
	if name, ok := operationNames[op]; ok {
		return name
	}
	return fmt.Sprintf("Operation(%d)", int(op))
}

// AccountType is the exchange account a change applies to.
type AccountType int

const (
	AccountSpot AccountType = iota
	AccountEarn
	AccountFunding
	AccountCard
)

var accountNames = map[AccountType]string{
	AccountSpot:    "Spot",
	AccountEarn:    "Earn",
	AccountFunding: "Funding",
	AccountCard:    "Card",
}

// ParseAccountType maps an export account string onto its AccountType.
func ParseAccountType(s string) (AccountType, error) {
	for a, name := range accountNames {
		if strings.EqualFold(name, s) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown account type %q", s)
}

func (a AccountType) String() string {
	if name, ok := accountNames[a]; ok {
		return name
	}
	return fmt.Sprintf("AccountType(%d)", int(a))
}
