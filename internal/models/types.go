package models

import (
	"encoding/json"
	"time"
)

// ContentType is the classifier's verdict on what a page predominantly contains.
type ContentType string

const (
	TypeJobListing   ContentType = "job_listing"
	TypeProduct      ContentType = "product"
	TypeArticle      ContentType = "article"
	TypeTableData    ContentType = "table_data"
	TypeImageGallery ContentType = "image_gallery"
	TypeForm         ContentType = "form"
	TypeDirectory    ContentType = "directory"
	TypeGeneral      ContentType = "general"
)

type Job struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

type Product struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	Link     string `json:"link"`
	ImageURL string `json:"image_url,omitempty"`
}

type Article struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Date    string `json:"date"`
	Author  string `json:"author"`
	Link    string `json:"link"`
}

// TableRow holds either a header->cell mapping (when the cell count matched
// the header count) or the raw cell sequence.
type TableRow struct {
	Cells map[string]string `json:"-"`
	Raw   []string          `json:"-"`
}

func (r TableRow) MarshalJSON() ([]byte, error) {
	if r.Cells != nil {
		return json.Marshal(r.Cells)
	}
	return json.Marshal(map[string][]string{"cells": r.Raw})
}

func (r *TableRow) UnmarshalJSON(data []byte) error {
	var raw struct {
		Cells []string `json:"cells"`
	}
	if err := json.Unmarshal(data, &raw); err == nil && raw.Cells != nil {
		r.Raw = raw.Cells
		return nil
	}
	return json.Unmarshal(data, &r.Cells)
}

type Table struct {
	Headers  []string   `json:"headers"`
	Rows     []TableRow `json:"rows"`
	RowCount int        `json:"row_count"`
}

type Link struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

type Image struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// DedupTitle is the identity key used when removing redundant records. Kinds
// without a title field return "" and are never dropped.
func (j Job) DedupTitle() string     { return j.Title }
func (a Article) DedupTitle() string { return a.Title }
func (p Product) DedupTitle() string { return "" }

// ScrapeResult is the single externally visible artifact of a scrape. Exactly
// one of the per-type collections is populated, matching ContentType;
// SchemaData is independent and may co-occur with any type.
type ScrapeResult struct {
	PageTitle   string            `json:"page_title"`
	ContentType ContentType       `json:"content_type"`
	URL         string            `json:"url"`
	SchemaData  []json.RawMessage `json:"schema_data,omitempty"`

	Jobs        []Job     `json:"jobs,omitempty"`
	Products    []Product `json:"products,omitempty"`
	Articles    []Article `json:"articles,omitempty"`
	Tables      []Table   `json:"tables,omitempty"`
	Links       []Link    `json:"links,omitempty"`
	Images      []Image   `json:"images,omitempty"`
	Headings    []Heading `json:"headings,omitempty"`
	MainContent []string  `json:"main_content,omitempty"`
}

type RunStatus string

const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// Run is one stored scrape invocation in the history log.
type Run struct {
	ID          string        `json:"id"`
	URL         string        `json:"url"`
	ContentType ContentType   `json:"content_type,omitempty"`
	Status      RunStatus     `json:"status"`
	Result      *ScrapeResult `json:"result,omitempty"`
	Error       string        `json:"error,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}
