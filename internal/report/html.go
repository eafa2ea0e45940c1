package report

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/fxreport-dev/fxreport/internal/model"
)

// htmlRow is the template model for one table row, already formatted.
type htmlRow struct {
	Currency string
	Rate     string
	Mean     string
}

// htmlPage is the template model for the whole document.
type htmlPage struct {
	Title string
	Rows  []htmlRow
}

var pageTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
        body {
            font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
            max-width: 800px;
            margin: 50px auto;
            padding: 20px;
            background-color: #f5f5f5;
        }
        h1 {
            color: #333;
            text-align: center;
            margin-bottom: 30px;
        }
        table {
            width: 100%;
            border-collapse: collapse;
            background-color: white;
            box-shadow: 0 2px 4px rgba(0, 0, 0, 0.1);
        }
        th {
            background-color: #4CAF50;
            color: white;
            padding: 12px;
            text-align: left;
            font-weight: bold;
        }
        td {
            padding: 10px 12px;
            border-bottom: 1px solid #ddd;
        }
        tr:hover {
            background-color: #f5f5f5;
        }
        .footer {
            text-align: center;
            margin-top: 20px;
            color: #666;
            font-size: 14px;
        }
    </style>
</head>
<body>
    <h1>{{.Title}}</h1>
    <table class="rate-table">
        <thead>
            <tr>
                <th>Currency Code</th>
                <th>Rate</th>
                <th>Mean Historical Rate</th>
            </tr>
        </thead>
        <tbody>
{{- range .Rows}}
            <tr>
                <td>{{.Currency}}</td>
                <td>{{.Rate}}</td>
                <td>{{.Mean}}</td>
            </tr>
{{- end}}
        </tbody>
    </table>
    <div class="footer">
        <p>Exchange rates relative to EUR | Source: European Central Bank</p>
    </div>
</body>
</html>
`))

// RenderHTML produces the self-contained report page. Output is
// deterministic for a given row slice.
func RenderHTML(title string, rows []model.ReportRow, places int32) (string, error) {
	page := htmlPage{Title: title, Rows: make([]htmlRow, 0, len(rows))}
	for _, row := range rows {
		page.Rows = append(page.Rows, htmlRow{
			Currency: string(row.Currency),
			Rate:     formatValue(row.Rate, places),
			Mean:     formatValue(row.Mean, places),
		})
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, page); err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}
	return buf.String(), nil
}
