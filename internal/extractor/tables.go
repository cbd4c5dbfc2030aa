package extractor

import (
	"github.com/PuerkitoBio/goquery"

	"smartscrape/internal/models"
	"smartscrape/internal/parser"
)

// Tables extracts every table independently. The first row supplies headers;
// data rows become header->cell mappings when the counts line up, raw cell
// sequences otherwise. Tables yielding zero rows are dropped.
func Tables(doc *goquery.Document) []models.Table {
	var tables []models.Table
	doc.Find("table").Each(func(_ int, tbl *goquery.Selection) {
		trs := tbl.Find("tr")

		headers := []string{}
		if trs.Length() > 0 {
			trs.First().Find("th,td").Each(func(_ int, cell *goquery.Selection) {
				headers = append(headers, parser.CleanText(cell.Text()))
			})
		}

		// with headers present the first row is consumed as the header row
		start := 0
		if len(headers) > 0 {
			start = 1
		}

		var rows []models.TableRow
		trs.Each(func(i int, tr *goquery.Selection) {
			if i < start {
				return
			}
			var cells []string
			tr.Find("td,th").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, parser.CleanText(cell.Text()))
			})
			if len(cells) == 0 {
				return
			}
			if len(headers) > 0 && len(headers) == len(cells) {
				m := make(map[string]string, len(cells))
				for j, h := range headers {
					m[h] = cells[j]
				}
				rows = append(rows, models.TableRow{Cells: m})
			} else {
				rows = append(rows, models.TableRow{Raw: cells})
			}
		})

		if len(rows) == 0 {
			return
		}
		tables = append(tables, models.Table{
			Headers:  headers,
			Rows:     rows,
			RowCount: len(rows),
		})
	})
	return tables
}
