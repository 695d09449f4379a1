package render

import (
	"html/template"
	"io"
	"pricescraper/internal/scrapeui"
)

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css">
</head>
<body>
<div class="container mt-5">
  <h2>&#x1F3E8; {{.Title}}</h2>
  <div class="row mt-4">
    <div class="col">
      <label for="arrival-date">Arrival Date</label>
      <input type="date" id="arrival-date" name="arrivalDate" value="{{.ArrivalDate}}" class="form-control">
    </div>
    <div class="col">
      <label for="departure-date">Departure Date</label>
      <input type="date" id="departure-date" name="departureDate" value="{{.DepartureDate}}" class="form-control">
    </div>
  </div>
{{- if .Disabled}}
  <button type="submit" class="btn btn-primary mt-3" disabled>{{.ButtonLabel}}</button>
{{- else}}
  <button type="submit" class="btn btn-primary mt-3">{{.ButtonLabel}}</button>
{{- end}}
{{- if .Loading}}
  <div class="mt-3 text-center">
    <div class="spinner-border text-primary" role="status">
      <span class="visually-hidden">Loading...</span>
    </div>
  </div>
{{- end}}
{{- if .Error}}
  <div class="alert alert-danger mt-3">{{.Error}}</div>
{{- end}}
{{- if .Rows}}
  <table class="table table-bordered mt-4">
    <thead>
      <tr>
        <th>URL</th>
        <th>Price</th>
      </tr>
    </thead>
    <tbody>
{{- range .Rows}}
      <tr>
        <td><a href="{{.URL}}" target="_blank" rel="noopener noreferrer">{{.URL}}</a></td>
        <td>{{.Price}}</td>
      </tr>
{{- end}}
    </tbody>
  </table>
{{- end}}
</div>
</body>
</html>
`))

type htmlRow struct {
	URL   string
	Price string
}

type htmlPage struct {
	Title         string
	ArrivalDate   string
	DepartureDate string
	ButtonLabel   string
	Disabled      bool
	Loading       bool
	Error         string
	Rows          []htmlRow
}

func newHTMLPage(s scrapeui.State) htmlPage {
	p := htmlPage{
		Title:         Title,
		ArrivalDate:   s.ArrivalDate.String(),
		DepartureDate: s.DepartureDate.String(),
		ButtonLabel:   s.ButtonLabel(),
		Disabled:      s.ButtonDisabled(),
	}

	switch s.View() {
	case scrapeui.ViewLoading:
		p.Loading = true
	case scrapeui.ViewError:
		p.Error = s.ErrorMessage
	case scrapeui.ViewSuccess:
		for _, record := range s.Results {
			p.Rows = append(p.Rows, htmlRow{URL: record.URL, Price: record.Price.String()})
		}
	}
	return p
}

// HTML writes s as a standalone HTML document, every value is escaped by
// html/template.
func HTML(w io.Writer, s scrapeui.State) error {
	return page.Execute(w, newHTMLPage(s))
}
