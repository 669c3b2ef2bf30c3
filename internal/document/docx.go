package document

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const documentPart = "word/document.xml"

// extractDOCX returns the body paragraphs of a WordprocessingML package joined by newlines.
// Paragraphs inside tables are skipped and run formatting is dropped.
func extractDOCX(path string) (string, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open word package: %w", err)
	}
	defer archive.Close()

	for _, f := range archive.File {
		if f.Name != documentPart {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("open %s: %w", documentPart, err)
		}
		defer rc.Close()

		paragraphs, err := readParagraphs(rc)
		if err != nil {
			return "", err
		}

		return strings.TrimSpace(strings.Join(paragraphs, "\n")), nil
	}

	return "", fmt.Errorf("%s not found in package", documentPart)
}

func readParagraphs(r io.Reader) ([]string, error) {
	decoder := xml.NewDecoder(r)

	var (
		paragraphs  []string
		current     strings.Builder
		inParagraph bool
		inText      bool
		tableDepth  int
	)

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return paragraphs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", documentPart, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth++
			case "p":
				if tableDepth == 0 {
					inParagraph = true
					current.Reset()
				}
			case "t":
				inText = inParagraph
			case "tab":
				if inParagraph {
					current.WriteString("\t")
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth--
			case "p":
				if inParagraph && tableDepth == 0 {
					paragraphs = append(paragraphs, current.String())
					inParagraph = false
				}
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}
}
