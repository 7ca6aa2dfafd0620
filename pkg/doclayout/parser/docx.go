package parser

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/doclayout-go/pkg/doclayout/models"
	"golang.org/x/text/unicode/norm"
)

// XML namespaces used in WordprocessingML
const (
	nsW  = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsWP = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	nsDC = "http://purl.org/dc/elements/1.1/"
)

// Package parts the analyzer needs.
const (
	partContentTypes = "[Content_Types].xml"
	partDocument     = "word/document.xml"
	partDocumentRels = "word/_rels/document.xml.rels"
	partStyles       = "word/styles.xml"
	partCore         = "docProps/core.xml"
)

// ErrMissingPart indicates a required package part is absent.
var ErrMissingPart = errors.New("missing required part")

// Document is an extracted DOCX package.
type Document struct {
	// Name is the file name (no path).
	Name string
	// Size is the package size in bytes.
	Size int64
	// Info holds header/footer and core property facts.
	Info models.DocumentInfo
	// Entities is the body content in source order.
	Entities []models.Entity
}

// relationship is one entry of a .rels part.
type relationship struct {
	target   string
	external bool
}

// docReader carries the package state shared by the part parsers.
type docReader struct {
	zr     *zip.Reader
	rels   map[string]relationship
	styles map[string]string // styleId -> style name
}

// Open reads and extracts the DOCX file at path.
func Open(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	doc, err := Parse(f, info.Size())
	if err != nil {
		return nil, err
	}
	doc.Name = filepath.Base(path)
	return doc, nil
}

// Parse extracts a DOCX package from r.
func Parse(r io.ReaderAt, size int64) (*Document, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	for _, name := range []string{partContentTypes, partDocument} {
		if findZipFile(zr, name) == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingPart, name)
		}
	}

	dr := &docReader{
		zr:     zr,
		rels:   make(map[string]relationship),
		styles: make(map[string]string),
	}

	// Relationships and styles are optional; a document without them still
	// has a body to analyse.
	if data, err := readZipFile(zr, partDocumentRels); err == nil && data != nil {
		dr.rels = parseRelationships(data)
	}
	if data, err := readZipFile(zr, partStyles); err == nil && data != nil {
		dr.styles = parseStyleNames(data)
	}

	data, err := readZipFile(zr, partDocument)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", partDocument, err)
	}
	entities, err := dr.parseBody(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", partDocument, err)
	}

	return &Document{
		Size:     size,
		Info:     dr.documentInfo(),
		Entities: entities,
	}, nil
}

// documentInfo collects header/footer presence and core properties.
func (dr *docReader) documentInfo() models.DocumentInfo {
	var info models.DocumentInfo

	for _, f := range dr.zr.File {
		if !strings.HasSuffix(f.Name, ".xml") {
			continue
		}
		isHeader := strings.Contains(f.Name, "header")
		isFooter := strings.Contains(f.Name, "footer")
		if !isHeader && !isFooter {
			continue
		}
		data, err := readZipFile(dr.zr, f.Name)
		if err != nil {
			continue
		}
		text := partText(data)
		if isHeader {
			info.HasHeader = true
			info.HeaderText = text
		}
		if isFooter {
			info.HasFooter = true
			info.FooterText = text
		}
	}

	if data, err := readZipFile(dr.zr, partCore); err == nil && data != nil {
		info.Title, info.Creator = parseCoreProperties(data)
	}

	return info
}

// partText joins the trimmed w:t texts of a header or footer part.
func partText(data []byte) string {
	var parts []string
	decoder := xml.NewDecoder(strings.NewReader(string(data)))
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "t" && se.Name.Space == nsW {
			txt, err := readElementText(decoder)
			if err != nil {
				break
			}
			if txt = strings.TrimSpace(txt); txt != "" {
				parts = append(parts, txt)
			}
		}
	}
	return normalizeText(strings.Join(parts, " "))
}

// parseCoreProperties returns dc:title and dc:creator.
func parseCoreProperties(data []byte) (title, creator string) {
	decoder := xml.NewDecoder(strings.NewReader(string(data)))
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		se, ok := token.(xml.StartElement)
		if !ok || se.Name.Space != nsDC {
			continue
		}
		switch se.Name.Local {
		case "title":
			if txt, err := readElementText(decoder); err == nil {
				title = normalizeText(strings.TrimSpace(txt))
			}
		case "creator":
			if txt, err := readElementText(decoder); err == nil {
				creator = normalizeText(strings.TrimSpace(txt))
			}
		}
	}
	return title, creator
}

// parseRelationships maps relationship ids to package part names.
func parseRelationships(data []byte) map[string]relationship {
	result := make(map[string]relationship)
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			var rID, target, mode string
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "Id":
					rID = attr.Value
				case "Target":
					target = attr.Value
				case "TargetMode":
					mode = attr.Value
				}
			}
			if rID == "" || target == "" {
				continue
			}
			rel := relationship{external: strings.EqualFold(mode, "External")}
			if rel.external {
				rel.target = target
			} else {
				rel.target = resolveRelativePath(target, "word")
			}
			result[rID] = rel
		}
	}

	return result
}

// parseStyleNames maps style ids to their display names.
func parseStyleNames(data []byte) map[string]string {
	result := make(map[string]string)
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	var current string
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		se, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "style":
			current = attrValue(se, "styleId")
		case "name":
			if current != "" {
				if _, seen := result[current]; !seen {
					result[current] = attrValue(se, "val")
				}
			}
		}
	}

	return result
}

// Helper functions

func findZipFile(r *zip.Reader, name string) *zip.File {
	for _, f := range r.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func readZipFile(r *zip.Reader, name string) ([]byte, error) {
	f := findZipFile(r, name)
	if f == nil {
		return nil, nil
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func readElementText(decoder *xml.Decoder) (string, error) {
	var text strings.Builder
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return text.String(), err
		}
		switch t := token.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return text.String(), nil
}

func attrValue(se xml.StartElement, local string) string {
	for _, attr := range se.Attr {
		if attr.Name.Local == local {
			return attr.Value
		}
	}
	return ""
}

// resolveRelativePath turns a relationship target into a part name.
func resolveRelativePath(target, baseDir string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	if strings.HasPrefix(target, "../") {
		clean := target
		for strings.HasPrefix(clean, "../") {
			clean = strings.TrimPrefix(clean, "../")
		}
		return clean
	}
	return baseDir + "/" + target
}

// normalizeText composes decomposed sequences (e.g. Hangul jamo) so that
// character counts and glyph widths see syllables.
func normalizeText(s string) string {
	return norm.NFC.String(s)
}
