// Package utils holds presentation helpers. Amounts stay in satoshis everywhere else.
package utils

import (
	"strconv"
	"time"

	"github.com/btcsuite/btcd/btcutil"
)

// SatsToBTC converts satoshis to bitcoin for display.
func SatsToBTC(sats int64) float64 {
	return btcutil.Amount(sats).ToBTC()
}

// FormatBTC renders satoshis as e.g. "0.000025 BTC", without trailing zeros.
func FormatBTC(sats int64) string {
	return strconv.FormatFloat(btcutil.Amount(sats).ToBTC(), 'f', -1, 64) + " BTC"
}

// FormatTimestamp renders a block time in UTC, or "unknown" for 0.
func FormatTimestamp(unix int64) string {
	if unix == 0 {
		return "unknown"
	}
	return time.Unix(unix, 0).UTC().Format(time.RFC3339)
}
