package common

import (
	"fmt"
	"strings"
	"time"
)

// FormatAmount formats a sand or melange amount with thousand separators
func FormatAmount(amount int64) string {
	str := fmt.Sprintf("%d", amount)

	n := len(str)
	if n <= 3 {
		return str
	}

	var result strings.Builder
	for i, digit := range str {
		if i > 0 && (n-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}

	return result.String()
}

// FormatDeposit formats the outcome of a harvest deposit
func FormatDeposit(sand, newMelange, leftover, toNext int64) string {
	if newMelange > 0 {
		return fmt.Sprintf("🏜️ Deposited **%s sand** and refined **%s melange**! Leftover sand: **%s**",
			FormatAmount(sand), FormatAmount(newMelange), FormatAmount(leftover))
	}
	return fmt.Sprintf("🏜️ Deposited **%s sand**. **%s** more sand until your next melange.",
		FormatAmount(sand), FormatAmount(toNext))
}

// FormatDiscordTimestamp formats a time as a Discord timestamp that displays in user's local timezone
// Format types: "t" = short time, "T" = long time, "d" = short date, "D" = long date,
// "f" = short date/time, "F" = long date/time, "R" = relative time
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}
