package notify

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"rapid-pay-api/internal/dto"
	"rapid-pay-api/internal/utils/timeutil"
)

// SubmissionAlert announces a payment awaiting manual verification.
func SubmissionAlert(orderID uint64, methodLabel, senderPhone, trxID string, amount decimal.Decimal, currency string) string {
	var sb strings.Builder
	sb.WriteString("*New Rapid Pay submission*\n")
	sb.WriteString(fmt.Sprintf("Order: %s\n", escapeMarkdown(fmt.Sprintf("#%d", orderID))))
	sb.WriteString(fmt.Sprintf("Method: %s\n", escapeMarkdown(methodLabel)))
	sb.WriteString(fmt.Sprintf("Sender: %s\n", escapeMarkdown(senderPhone)))
	sb.WriteString(fmt.Sprintf("TrxID: `%s`\n", escapeMarkdown(trxID)))
	sb.WriteString(fmt.Sprintf("Amount: %s\n", escapeMarkdown(amount.StringFixed(2)+" "+currency)))
	sb.WriteString(fmt.Sprintf("Time: %s\n", escapeMarkdown(timeutil.FormatISO8601(timeutil.NowUTC()))))
	return sb.String()
}

// SweepFailureAlert lists orders the expiry sweep could not cancel.
func SweepFailureAlert(r dto.SweepReport) string {
	ids := make([]string, 0, len(r.Failed))
	for _, id := range r.Failed {
		ids = append(ids, fmt.Sprintf("#%d", id))
	}
	var sb strings.Builder
	sb.WriteString("*Rapid Pay expiry sweep failures*\n")
	sb.WriteString(fmt.Sprintf("Cutoff: %s\n", escapeMarkdown(timeutil.FormatISO8601(r.Cutoff))))
	sb.WriteString(fmt.Sprintf("Cancelled: %d of %d\n", len(r.Cancelled), r.Candidates))
	sb.WriteString(fmt.Sprintf("Failed: %s\n", escapeMarkdown(strings.Join(ids, ", "))))
	return sb.String()
}

// escapeMarkdown escapes Telegram MarkdownV2 special characters.
func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		"_", "\\_",
		"*", "\\*",
		"[", "\\[",
		"]", "\\]",
		"(", "\\(",
		")", "\\)",
		"~", "\\~",
		"`", "\\`",
		">", "\\>",
		"#", "\\#",
		"+", "\\+",
		"-", "\\-",
		"=", "\\=",
		"|", "\\|",
		"{", "\\{",
		"}", "\\}",
		".", "\\.",
		"!", "\\!",
	)
	return replacer.Replace(s)
}
