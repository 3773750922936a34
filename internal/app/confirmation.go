package app

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ConfirmationLine is one row of the itemized purchase confirmation.
type ConfirmationLine struct {
	EventName     string
	CategoryLabel string
	FinalPrice    decimal.Decimal
}

// renderConfirmation builds the HTML confirmation body: a numbered table of
// event, category and price per purchased ticket.
func renderConfirmation(lines []ConfirmationLine) string {
	var rows strings.Builder
	for i, line := range lines {
		fmt.Fprintf(&rows,
			"<tr><td>%d</td><td>%s</td><td>%s</td><td>$%s</td></tr>",
			i+1,
			line.EventName,
			line.CategoryLabel,
			line.FinalPrice.StringFixed(2),
		)
	}

	return fmt.Sprintf(`<h1>ConcertFever Purchase Confirmation</h1>
<p>Your purchase was completed successfully. Thank you for shopping with us!</p>
<h2>Ticket Details</h2>
<table border="1" cellpadding="10">
  <thead>
    <tr><th>#</th><th>Event Name</th><th>Category</th><th>Final Price</th></tr>
  </thead>
  <tbody>
    %s
  </tbody>
</table>
<p>Login to your account to retrieve ticket details.</p>
`, rows.String())
}
