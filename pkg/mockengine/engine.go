// Package mockengine turns a free-text question into a canned SQL string and a
// pre-filtered slice of the fixed dataset. All matching is deterministic
// keyword matching; the functions are pure and safe for concurrent use.
package mockengine

import (
	"fmt"
	"strings"

	"github.com/ilyaedelshtein/kornit-chat/pkg/dataset"
)

// Result is what the engine produces for one question.
type Result struct {
	SQL  string        `json:"sql"`
	Rows []dataset.Row `json:"rows"`
}

// maxRows caps the filtered result, taking the first rows in dataset order.
const maxRows = 30

// titleBudget is the character budget for inferred chat titles, excluding the
// trailing ellipsis.
const titleBudget = 50

// ReplyTextFor returns the fixed bot reply template embedding the user's
// question.
func ReplyTextFor(question string) string {
	return fmt.Sprintf("I understood your question as %q\nAfter analyzing the information, I made the following query:", question)
}

// Answer runs the full engine for one question.
func Answer(question string) Result {
	return Result{
		SQL:  GenerateSQL(question),
		Rows: FilterRows(question),
	}
}

// GenerateSQL picks a canned query for the question. Rule order is
// significant: revenue&country, units&product, monthly/month, channel,
// premium/classic, then the default query.
func GenerateSQL(question string) string {
	q := strings.ToLower(question)

	if strings.Contains(q, "revenue") && strings.Contains(q, "country") {
		return "SELECT country, SUM(revenue) as total_revenue\nFROM printing_2024 \nGROUP BY country\nORDER BY total_revenue DESC;"
	}

	if strings.Contains(q, "units") && strings.Contains(q, "product") {
		return "SELECT product, SUM(units) as total_units\nFROM printing_2024 \nGROUP BY product\nORDER BY total_units DESC;"
	}

	if strings.Contains(q, "monthly") || strings.Contains(q, "month") {
		return "SELECT date, SUM(revenue) as monthly_revenue, SUM(units) as monthly_units\nFROM printing_2024 \nGROUP BY date\nORDER BY date;"
	}

	if strings.Contains(q, "channel") {
		return "SELECT channel, SUM(revenue) as revenue, SUM(units) as units\nFROM printing_2024 \nGROUP BY channel;"
	}

	if strings.Contains(q, "premium") || strings.Contains(q, "classic") {
		variant := "Classic"
		if strings.Contains(q, "premium") {
			variant = "Premium"
		}
		return fmt.Sprintf("SELECT product, date, SUM(revenue) as revenue, SUM(units) as units\nFROM printing_2024 \nWHERE product LIKE '%%%s%%'\nGROUP BY product, date\nORDER BY date;", variant)
	}

	return "SELECT * FROM printing_2024 \nORDER BY date DESC, revenue DESC\nLIMIT 20;"
}

// FilterRows applies up to three keyword filters (product, channel, country)
// against the fixed dataset. Filters compose by AND; the result keeps dataset
// order and is capped at 30 rows.
func FilterRows(question string) []dataset.Row {
	q := strings.ToLower(question)

	rows := make([]dataset.Row, len(dataset.Printing2024))
	copy(rows, dataset.Printing2024)

	if strings.Contains(q, "premium") {
		rows = keep(rows, func(r dataset.Row) bool { return r.Product == dataset.ProductPremium })
	} else if strings.Contains(q, "classic") {
		rows = keep(rows, func(r dataset.Row) bool { return r.Product == dataset.ProductClassic })
	}

	if strings.Contains(q, "online") {
		rows = keep(rows, func(r dataset.Row) bool { return r.Channel == dataset.ChannelOnline })
	} else if strings.Contains(q, "wholesale") {
		rows = keep(rows, func(r dataset.Row) bool { return r.Channel == dataset.ChannelWholesale })
	}

	if strings.Contains(q, "usa") || strings.Contains(q, "america") {
		rows = keep(rows, func(r dataset.Row) bool { return r.Country == "USA" })
	} else if strings.Contains(q, "canada") {
		rows = keep(rows, func(r dataset.Row) bool { return r.Country == "Canada" })
	} else if strings.Contains(q, "uk") || strings.Contains(q, "britain") {
		rows = keep(rows, func(r dataset.Row) bool { return r.Country == "UK" })
	}

	if len(rows) > maxRows {
		rows = rows[:maxRows]
	}
	return rows
}

func keep(rows []dataset.Row, pred func(dataset.Row) bool) []dataset.Row {
	out := rows[:0]
	for _, r := range rows {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// InferTitle derives a chat title from its first user message. Text within
// the 50-character budget is returned verbatim; longer text is cut at a word
// boundary and ellipsized, so the result never exceeds 53 characters.
func InferTitle(text string) string {
	if len(text) <= titleBudget {
		return text
	}

	var title strings.Builder
	for _, word := range strings.Split(text, " ") {
		// The separator counts against the budget even before the first word,
		// matching the reference truncation exactly.
		if title.Len()+1+len(word) > titleBudget {
			break
		}
		if title.Len() > 0 {
			title.WriteString(" ")
		}
		title.WriteString(word)
	}
	return title.String() + "..."
}
