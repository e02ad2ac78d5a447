package coinpnl

import (
	"fmt"
	"net/http"
	"time"

	"github.com/PaesslerAG/jsonpath"
)

// binanceApiBase is the public market data endpoint, no credentials
// needed for candle lookups.
const binanceApiBase = "https://api.binance.com/api/v3"

// BinanceClient looks up daily close prices on the USDT spot markets.
// It implements PriceSource. Responses are cached on disk for a day,
// historical candles do not change.
type BinanceClient struct {
	base   string
	client *http.Client
}

func NewBinanceClient() *BinanceClient {
	return &BinanceClient{base: binanceApiBase, client: daily()}
}

// dayStart returns the UTC midnight opening the day containing ms.
func dayStart(ms int64) int64 {
	t := time.UnixMilli(ms).UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).UnixMilli()
}

// A kline response is an array of candle arrays:
//
//	[
//	  [
//	    1652054400000,      // open time
//	    "590.50000000",     // open
//	    "593.90000000",     // high
//	    "584.10000000",     // low
//	    "588.80000000",     // close
//	    ...
//	  ]
//	]
func (b *BinanceClient) DailyClosePrice(asset string, utcTime int64) (Decimal, error) {
	addr := fmt.Sprintf("%s/klines?symbol=%sUSDT&limit=1&interval=1d&startTime=%d",
		b.base, asset, dayStart(utcTime))
	var jobj any
	if err := jwget(b.client, addr, &jobj); err != nil {
		return Zero, fmt.Errorf("cannot fetch %s candle: %w", asset, err)
	}
	path := "$[0][4]"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return Zero, fmt.Errorf("unexpected %s candle response: %q %w", asset, path, err)
	}
	// because jsonpath is never clear about wheter it returns a list of 1 answer, or a single answer:
	// by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	s, ok := jval.(string)
	if !ok {
		return Zero, fmt.Errorf("unexpected %s candle response: close price %v is not a string", asset, jval)
	}
	return ParseDecimal(s)
}
