// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/ravisuresh229/evidencegap/pkg/types"
)

// xmlTagRe strips markup tags from innerxml content. Titles and abstracts
// carry nested <i>, <sup>, <sub>, and <b> tags whose text must be kept.
var xmlTagRe = regexp.MustCompile(`<[^>]+>`)

// yearRe extracts the first 4-digit year from MedlineDate strings such as
// "2020 Jan-Feb", "2019-2020", "Winter 2020".
var yearRe = regexp.MustCompile(`\d{4}`)

type pubmedArticle struct {
	Citation medlineCitation `xml:"MedlineCitation"`
}

type medlineCitation struct {
	PMID    string     `xml:"PMID"`
	Article xmlArticle `xml:"Article"`
}

type xmlArticle struct {
	Journal      xmlJournal      `xml:"Journal"`
	ArticleTitle xmlInnerContent `xml:"ArticleTitle"`
	Abstract     xmlAbstract     `xml:"Abstract"`
	AuthorList   xmlAuthorList   `xml:"AuthorList"`
}

type xmlJournal struct {
	JournalIssue xmlJournalIssue `xml:"JournalIssue"`
	Title        string          `xml:"Title"`
}

type xmlJournalIssue struct {
	PubDate xmlPubDate `xml:"PubDate"`
}

type xmlPubDate struct {
	Year        string `xml:"Year"`
	MedlineDate string `xml:"MedlineDate"`
}

// xmlInnerContent captures innerxml so text inside nested formatting tags
// survives.
type xmlInnerContent struct {
	Inner string `xml:",innerxml"`
}

type xmlAbstract struct {
	AbstractTexts []xmlAbstractText `xml:"AbstractText"`
}

type xmlAbstractText struct {
	Label string `xml:"Label,attr"`
	Inner string `xml:",innerxml"`
}

type xmlAuthorList struct {
	Authors []xmlAuthor `xml:"Author"`
}

type xmlAuthor struct {
	ValidYN        string `xml:"ValidYN,attr"`
	LastName       string `xml:"LastName"`
	ForeName       string `xml:"ForeName"`
	CollectiveName string `xml:"CollectiveName"`
}

// Fetch retrieves candidate records for the given PMIDs. Missing fields get
// sentinel defaults; a malformed article is skipped without aborting the
// batch.
func (c *Client) Fetch(ctx context.Context, pmids []string) ([]types.CandidateRecord, error) {
	if len(pmids) == 0 {
		return nil, fmt.Errorf("at least one PMID is required")
	}

	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("id", strings.Join(pmids, ","))
	params.Set("retmode", "xml")

	body, err := c.doGet(ctx, "efetch.fcgi", params)
	if err != nil {
		return nil, fmt.Errorf("fetch request failed: %w", err)
	}
	return parseRecords(body), nil
}

// parseRecords walks the PubmedArticle elements one at a time so a single
// malformed article is dropped rather than failing the whole payload.
func parseRecords(data []byte) []types.CandidateRecord {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var out []types.CandidateRecord
	for {
		tok, err := dec.Token()
		if err != nil {
			return out
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "PubmedArticle" {
			continue
		}
		var pa pubmedArticle
		if err := dec.DecodeElement(&pa, &se); err != nil {
			continue
		}
		out = append(out, convertRecord(pa))
	}
}

// cleanInnerXML strips markup tags and decodes HTML entities.
func cleanInnerXML(s string) string {
	stripped := xmlTagRe.ReplaceAllString(s, "")
	return strings.TrimSpace(html.UnescapeString(stripped))
}

func convertRecord(pa pubmedArticle) types.CandidateRecord {
	xa := pa.Citation.Article

	rec := types.CandidateRecord{
		PMID:     strings.TrimSpace(pa.Citation.PMID),
		Title:    cleanInnerXML(xa.ArticleTitle.Inner),
		Abstract: joinAbstract(xa.Abstract.AbstractTexts),
		Journal:  strings.TrimSpace(xa.Journal.Title),
	}
	if rec.Title == "" {
		rec.Title = types.NoTitle
	}
	if rec.Abstract == "" {
		rec.Abstract = types.NoAbstract
	}
	if rec.Journal == "" {
		rec.Journal = types.UnknownJournal
	}
	if rec.PMID != "" {
		rec.URL = articleURLPrefix + rec.PMID + "/"
	}

	pd := xa.Journal.JournalIssue.PubDate
	year := pd.Year
	if year == "" {
		year = yearRe.FindString(pd.MedlineDate)
	}
	if y, err := strconv.Atoi(year); err == nil {
		rec.Year = y
	}

	for _, au := range xa.AuthorList.Authors {
		if au.ValidYN == "N" {
			continue
		}
		name := au.CollectiveName
		if name == "" {
			name = strings.TrimSpace(au.ForeName + " " + au.LastName)
		}
		if name != "" {
			rec.Authors = append(rec.Authors, name)
		}
	}
	return rec
}

// joinAbstract flattens labeled abstract sections into one text block.
func joinAbstract(sections []xmlAbstractText) string {
	var parts []string
	for _, at := range sections {
		text := cleanInnerXML(at.Inner)
		if text == "" {
			continue
		}
		if at.Label != "" {
			text = at.Label + ": " + text
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, "\n\n")
}
