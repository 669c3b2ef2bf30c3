package company

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const maxDescriptionRunes = 500

// summarizePage reads the description and industry hints from an HTML page.
// The description comes from the meta description, falling back to the first non-empty paragraph.
func summarizePage(r io.Reader) (BasicInfo, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return BasicInfo{}, err
	}

	info := BasicInfo{
		Description: metaContent(doc, "description"),
		Industry:    firstKeyword(metaContent(doc, "keywords")),
	}

	if info.Description == "" {
		doc.Find("p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			info.Description = collapseSpace(s.Text())
			return info.Description == ""
		})
	}

	info.Description = truncateRunes(info.Description, maxDescriptionRunes)

	return info, nil
}

func metaContent(doc *goquery.Document, name string) string {
	var content string
	doc.Find("meta").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !strings.EqualFold(strings.TrimSpace(s.AttrOr("name", "")), name) {
			return true
		}
		content = collapseSpace(s.AttrOr("content", ""))
		return content == ""
	})
	return content
}

func firstKeyword(keywords string) string {
	for _, k := range strings.FieldsFunc(keywords, func(r rune) bool {
		return r == ',' || r == '，' || r == '、' || r == ';'
	}) {
		if k = strings.TrimSpace(k); k != "" {
			return k
		}
	}
	return ""
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
