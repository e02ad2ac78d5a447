package coinpnl

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"
)

// This file contains functions to access the EODHD API, used for the
// fiat exchange rates that the crypto exchange cannot provide.

const eodhdApiBase = "https://eodhd.com/api"

// EodhdApiKeyEnv is the environment variable holding the EODHD API key.
// You can get one at https://eodhd.com/
const EodhdApiKeyEnv = "EODHD_API_KEY"

// EodhdClient looks up daily fiat/USD exchange rates. It implements
// PriceSource for fiat currencies.
type EodhdClient struct {
	base   string
	apiKey string
	client *http.Client
}

// NewEodhdClient builds a client. An empty apiKey falls back to the
// environment variable, and a still empty key makes every lookup fail.
func NewEodhdClient(apiKey string) *EodhdClient {
	if apiKey == "" {
		apiKey = os.Getenv(EodhdApiKeyEnv)
	}
	return &EodhdClient{
		base:   eodhdApiBase,
		apiKey: apiKey,
		client: daily(),
	}
}

// DailyClosePrice returns the currency/USD rate for the day containing
// utcTime. The ticker for forex is in the format "fromCurrencyUSD.FOREX".
func (c *EodhdClient) DailyClosePrice(currency string, utcTime int64) (Decimal, error) {
	if c.apiKey == "" {
		return Zero, fmt.Errorf("no EODHD API key, set %s or provide the %s/USD rate yourself",
			EodhdApiKeyEnv, currency)
	}

	day := time.UnixMilli(dayStart(utcTime)).UTC()
	next := day.AddDate(0, 0, 1)
	ticker := fmt.Sprintf("%sUSD.FOREX", currency)

	// nota bene: bounds are included in the response, the format is 'YYYY-MM-DD'.
	addr := fmt.Sprintf("%s/eod/%s?fmt=json&api_token=%s&from=%s&to=%s",
		c.base, ticker, url.QueryEscape(c.apiKey),
		day.Format("2006-01-02"), next.Format("2006-01-02"))

	// that's the payload
	type Info struct {
		Date  string      `json:"date"`
		Close json.Number `json:"close"`
		Open  json.Number `json:"open"`
	}
	content := make([]Info, 0)
	if err := jwget(c.client, addr, &content); err != nil {
		return Zero, err
	}
	if len(content) == 0 {
		return Zero, fmt.Errorf("eodhd has no %s rate on %s", ticker, day.Format("2006-01-02"))
	}

	// eodhd forex close is probably buggy and equal to the open most of
	// the time. The open of the next day is closer to the truth, so be it.
	if len(content) > 1 {
		return ParseDecimal(content[1].Open.String())
	}
	return ParseDecimal(content[0].Close.String())
}
