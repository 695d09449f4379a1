package render

import (
	"fmt"
	"io"
	"pricescraper/internal/scrapeui"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

const Title = "Hotel Price Scraper"

// NewTable is a rounded go-pretty table with the URL/Price header.
func NewTable(s scrapeui.State) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"URL", "Price"})
	for _, record := range s.Results {
		t.AppendRow(table.Row{record.URL, record.Price.String()})
	}
	return t
}

// Terminal writes the plain text view of s.
func Terminal(w io.Writer, s scrapeui.State) error {
	var out strings.Builder

	fmt.Fprintf(&out, "%s\n\n", Title)
	fmt.Fprintf(&out, "Arrival Date:   %s\n", s.ArrivalDate)
	fmt.Fprintf(&out, "Departure Date: %s\n\n", s.DepartureDate)

	if s.ButtonDisabled() {
		fmt.Fprintf(&out, "[ %s ] (disabled)\n", s.ButtonLabel())
	} else {
		fmt.Fprintf(&out, "[ %s ]\n", s.ButtonLabel())
	}

	switch s.View() {
	case scrapeui.ViewLoading:
		out.WriteString("\nLoading...\n")
	case scrapeui.ViewError:
		fmt.Fprintf(&out, "\n! %s\n", s.ErrorMessage)
	case scrapeui.ViewSuccess:
		out.WriteString("\n")
		out.WriteString(NewTable(s).Render())
		out.WriteString("\n")
	}

	_, err := io.WriteString(w, out.String())
	return err
}
