package ioformats

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rotisserie/eris"

	"smartscrape/internal/models"
)

// WriteCSV projects a scrape result into tabular form per content type:
// typed records become one row each; table pages export the first table that
// has headers (falling back to a table-count row); everything else exports
// main content, else links, else a single page-title row.
func WriteCSV(w io.Writer, res *models.ScrapeResult) error {
	cw := csv.NewWriter(w)

	switch res.ContentType {
	case models.TypeJobListing:
		_ = cw.Write([]string{"title", "company", "location", "description", "link"})
		for _, j := range res.Jobs {
			_ = cw.Write([]string{j.Title, j.Company, j.Location, j.Description, j.Link})
		}
	case models.TypeProduct:
		_ = cw.Write([]string{"name", "price", "link", "image_url"})
		for _, p := range res.Products {
			_ = cw.Write([]string{p.Name, p.Price, p.Link, p.ImageURL})
		}
	case models.TypeArticle:
		_ = cw.Write([]string{"title", "summary", "date", "author", "link"})
		for _, a := range res.Articles {
			_ = cw.Write([]string{a.Title, a.Summary, a.Date, a.Author, a.Link})
		}
	case models.TypeTableData:
		writeTableCSV(cw, res.Tables)
	default:
		writeGeneralCSV(cw, res)
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "ioformats: write csv")
}

// writeTableCSV exports the first table carrying headers; when none does, a
// single row reports how many tables were found.
func writeTableCSV(cw *csv.Writer, tables []models.Table) {
	for _, tbl := range tables {
		if len(tbl.Headers) == 0 {
			continue
		}
		_ = cw.Write(tbl.Headers)
		for _, row := range tbl.Rows {
			if row.Cells != nil {
				record := make([]string, len(tbl.Headers))
				for i, h := range tbl.Headers {
					record[i] = row.Cells[h]
				}
				_ = cw.Write(record)
			} else {
				_ = cw.Write(row.Raw)
			}
		}
		return
	}
	_ = cw.Write([]string{"table_count"})
	_ = cw.Write([]string{strconv.Itoa(len(tables))})
}

func writeGeneralCSV(cw *csv.Writer, res *models.ScrapeResult) {
	switch {
	case len(res.MainContent) > 0:
		_ = cw.Write([]string{"content"})
		for _, p := range res.MainContent {
			_ = cw.Write([]string{p})
		}
	case len(res.Links) > 0:
		_ = cw.Write([]string{"text", "url"})
		for _, l := range res.Links {
			_ = cw.Write([]string{l.Text, l.URL})
		}
	default:
		_ = cw.Write([]string{"page_title"})
		_ = cw.Write([]string{res.PageTitle})
	}
}
