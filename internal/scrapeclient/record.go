package scrapeclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"pricescraper/lib/calendar"
)

// Request is the body posted to the scrape service.
type Request struct {
	ArrivalDate   calendar.Date `json:"arrivalDate"`
	DepartureDate calendar.Date `json:"departureDate"`
	// URLs overrides the listings the service scrapes, the service falls back
	// to its own list when empty.
	URLs []string `json:"urls,omitempty"`
}

// PriceRecord is one scraped listing.
type PriceRecord struct {
	URL   string `json:"url"`
	Price Price  `json:"price"`
}

// Price is the quoted price as the service sent it. The service may send
// either a string ("$120") or a number (120.5), numbers keep their literal text.
type Price string

func (p *Price) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*p = ""
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var text string
		err := json.Unmarshal(trimmed, &text)
		if err != nil {
			return err
		}
		*p = Price(text)
		return nil
	}

	var number json.Number
	err := json.Unmarshal(trimmed, &number)
	if err != nil {
		return fmt.Errorf("price must be a string or a number, got %s", trimmed)
	}
	*p = Price(number.String())
	return nil
}

func (p Price) String() string {
	return string(p)
}

// ParseRecords decodes a response body. A `null` body is an empty list,
// anything that is not a JSON array of records is a ParseError.
func ParseRecords(body []byte) ([]PriceRecord, error) {
	var records []PriceRecord
	err := json.Unmarshal(body, &records)
	if err != nil {
		return nil, ParseError{Err: err}
	}
	return records, nil
}
