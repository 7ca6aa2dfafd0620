package parser

import (
	"archive/zip"
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ukaji3/doclayout-go/pkg/doclayout/models"
)

const testContentTypes = `<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"></Types>`

const testDocumentHead = `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"
 xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
 xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"
 xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"
 xmlns:mc="http://schemas.openxmlformats.org/markup-compatibility/2006"><w:body>`

const testDocumentTail = `<w:sectPr/></w:body></w:document>`

// writeTestDocx writes a DOCX package with the given body XML and extra parts.
func writeTestDocx(t *testing.T, body string, extra map[string][]byte) string {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	parts := map[string][]byte{
		"[Content_Types].xml": []byte(testContentTypes),
		"word/document.xml":   []byte(testDocumentHead + body + testDocumentTail),
	}
	for name, data := range extra {
		parts[name] = data
	}
	for name, data := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}

	path := filepath.Join(t.TempDir(), "test.docx")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("failed to write docx: %v", err)
	}
	return path
}

func para(style, text string) string {
	var ppr string
	if style != "" {
		ppr = `<w:pPr><w:pStyle w:val="` + style + `"/></w:pPr>`
	}
	return `<w:p>` + ppr + `<w:r><w:t>` + text + `</w:t></w:r></w:p>`
}

func TestOpenEntities(t *testing.T) {
	body := para("Heading2", "Overview") +
		para("", "  Some body text  ") +
		`<w:p><w:pPr><w:numPr><w:ilvl w:val="0"/></w:numPr></w:pPr><w:r><w:t>item</w:t></w:r></w:p>` +
		`<w:p/>` +
		`<w:p><w:r><w:br w:type="page"/></w:r></w:p>` +
		para("Heading3", "Details") +
		`<w:p><w:r><w:drawing><wp:inline><wp:extent cx="1270000" cy="635000"/></wp:inline></w:drawing></w:r></w:p>` +
		`<w:tbl><w:tblGrid><w:gridCol w:w="4000"/><w:gridCol w:w="8960"/></w:tblGrid>` +
		`<w:tr><w:tc><w:tcPr><w:tcW w:w="4000" w:type="dxa"/><w:shd w:val="clear" w:fill="1b3664"/></w:tcPr>` + para("", "Key") + `</w:tc>` +
		`<w:tc><w:tcPr><w:tcW w:w="50" w:type="pct"/></w:tcPr>` + para("", "Value") + `</w:tc></w:tr>` +
		`<w:tr><w:tc>` + para("", "a") + para("", "b") + `</w:tc><w:tc>` + para("", "") + `</w:tc></w:tr>` +
		`</w:tbl>`

	path := writeTestDocx(t, body, nil)
	doc, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if doc.Name != "test.docx" {
		t.Errorf("Name = %q, expected test.docx", doc.Name)
	}

	expected := []struct {
		kind  models.EntityKind
		index int
	}{
		{models.EntityHeading, 0},
		{models.EntityParagraph, 1},
		{models.EntityBullet, 2},
		{models.EntityEmpty, 3},
		{models.EntityPageBreak, 4},
		{models.EntityParagraph, 4},
		{models.EntityHeading, 5},
		{models.EntityImage, 6},
		{models.EntityTable, 7},
	}
	if len(doc.Entities) != len(expected) {
		t.Fatalf("got %d entities, expected %d: %+v", len(doc.Entities), len(expected), doc.Entities)
	}
	for i, e := range expected {
		got := doc.Entities[i]
		if got.Kind != e.kind || got.Index != e.index {
			t.Errorf("entity %d = (%s, %d), expected (%s, %d)", i, got.Kind, got.Index, e.kind, e.index)
		}
	}

	if h := doc.Entities[0]; h.Level != 2 || h.Text != "Overview" {
		t.Errorf("heading = (%d, %q), expected (2, Overview)", h.Level, h.Text)
	}
	if p := doc.Entities[1]; p.Text != "Some body text" {
		t.Errorf("paragraph text = %q, expected trimmed text", p.Text)
	}
	if p := doc.Entities[5]; p.Text != "" {
		t.Errorf("break paragraph text = %q, expected empty", p.Text)
	}

	img := doc.Entities[7].Image
	if img == nil {
		t.Fatal("image entity has no image")
	}
	if img.WidthEMU != 1270000 || img.HeightEMU != 635000 {
		t.Errorf("image extent = %dx%d", img.WidthEMU, img.HeightEMU)
	}
	if img.SectionTitle != "Details" {
		t.Errorf("image section = %q, expected Details", img.SectionTitle)
	}

	tbl := doc.Entities[8].Table
	if tbl == nil {
		t.Fatal("table entity has no table")
	}
	if tbl.RowCount() != 2 || tbl.ColCount() != 2 {
		t.Errorf("table size = %dx%d, expected 2x2", tbl.RowCount(), tbl.ColCount())
	}
	if tbl.FirstFill != "1B3664" {
		t.Errorf("FirstFill = %q, expected 1B3664", tbl.FirstFill)
	}
	if len(tbl.GridWidths) != 2 || tbl.GridWidths[1] != 8960 {
		t.Errorf("GridWidths = %v", tbl.GridWidths)
	}
	if tbl.Rows[0].Cells[0].Width != 4000 {
		t.Errorf("dxa cell width = %d, expected 4000", tbl.Rows[0].Cells[0].Width)
	}
	if tbl.Rows[0].Cells[1].Width != 0 {
		t.Errorf("pct cell width = %d, expected 0", tbl.Rows[0].Cells[1].Width)
	}
	if got := tbl.Rows[1].Cells[0].Text; got != "a b" {
		t.Errorf("cell text = %q, expected %q", got, "a b")
	}
}

func TestOpenHeadingFromStyleName(t *testing.T) {
	styles := `<?xml version="1.0" encoding="UTF-8"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:style w:type="paragraph" w:styleId="a3"><w:name w:val="heading 3"/></w:style>
<w:style w:type="paragraph" w:styleId="Title"><w:name w:val="Title"/></w:style>
</w:styles>`

	path := writeTestDocx(t, para("a3", "Sub")+para("Title", "Cover")+para("Heading", "Bare"),
		map[string][]byte{"word/styles.xml": []byte(styles)})
	doc, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	tests := []struct {
		kind  models.EntityKind
		level int
	}{
		{models.EntityHeading, 3},
		{models.EntityParagraph, 0},
		{models.EntityHeading, 0},
	}
	for i, tt := range tests {
		got := doc.Entities[i]
		if got.Kind != tt.kind || got.Level != tt.level {
			t.Errorf("entity %d = (%s, %d), expected (%s, %d)", i, got.Kind, got.Level, tt.kind, tt.level)
		}
	}
}

func TestOpenSkipsFallbackAndNestedTables(t *testing.T) {
	body := `<w:p><w:r><mc:AlternateContent><mc:Choice Requires="wps"><w:t>once</w:t></mc:Choice>` +
		`<mc:Fallback><w:t>once</w:t></mc:Fallback></mc:AlternateContent></w:r></w:p>` +
		`<w:tbl><w:tr><w:tc>` + para("", "outer") +
		`<w:tbl><w:tr><w:tc>` + para("", "inner") + `</w:tc></w:tr></w:tbl>` +
		`</w:tc><w:tc>` + para("", "x") + `</w:tc></w:tr></w:tbl>`

	doc, err := Open(writeTestDocx(t, body, nil))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if len(doc.Entities) != 2 {
		t.Fatalf("got %d entities, expected 2", len(doc.Entities))
	}
	if doc.Entities[0].Text != "once" {
		t.Errorf("text = %q, expected fallback skipped", doc.Entities[0].Text)
	}
	tbl := doc.Entities[1].Table
	if tbl.RowCount() != 1 || tbl.ColCount() != 2 {
		t.Errorf("table size = %dx%d, expected 1x2", tbl.RowCount(), tbl.ColCount())
	}
	if tbl.Rows[0].Cells[0].Text != "outer" {
		t.Errorf("cell text = %q, expected nested table skipped", tbl.Rows[0].Cells[0].Text)
	}
}

func TestOpenGridSpan(t *testing.T) {
	body := `<w:tbl><w:tr><w:tc><w:tcPr><w:gridSpan w:val="2"/></w:tcPr>` + para("", "wide") + `</w:tc></w:tr>` +
		`<w:tr><w:tc>` + para("", "a") + `</w:tc><w:tc>` + para("", "b") + `</w:tc></w:tr></w:tbl>`

	doc, err := Open(writeTestDocx(t, body, nil))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	tbl := doc.Entities[0].Table
	if tbl.Rows[0].Cells[0].ColSpan != 2 {
		t.Errorf("ColSpan = %d, expected 2", tbl.Rows[0].Cells[0].ColSpan)
	}
	if !tbl.HasMergedCells() {
		t.Error("expected HasMergedCells to be true")
	}
}

func TestOpenImageFromMedia(t *testing.T) {
	var img bytes.Buffer
	if err := png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 96, 48))); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	rels := `<?xml version="1.0" encoding="UTF-8"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId5" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="media/image1.png"/>
<Relationship Id="rId6" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink" Target="https://example.com" TargetMode="External"/>
</Relationships>`
	body := `<w:p><w:r><w:drawing><wp:inline><wp:extent cx="0" cy="0"/>` +
		`<a:graphic><a:graphicData><a:blip r:embed="rId5"/></a:graphicData></a:graphic></wp:inline></w:drawing></w:r></w:p>` +
		`<w:p><w:r><w:drawing><a:blip r:embed="rId6"/></w:drawing></w:r></w:p>`

	doc, err := Open(writeTestDocx(t, body, map[string][]byte{
		"word/_rels/document.xml.rels": []byte(rels),
		"word/media/image1.png":        img.Bytes(),
	}))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	first := doc.Entities[0]
	if first.Kind != models.EntityImage {
		t.Fatalf("first entity = %s, expected image", first.Kind)
	}
	if first.Image.WidthEMU != 96*EMUPerPixel || first.Image.HeightEMU != 48*EMUPerPixel {
		t.Errorf("media extent = %dx%d", first.Image.WidthEMU, first.Image.HeightEMU)
	}
	if first.Image.SectionTitle != "" {
		t.Errorf("section = %q, expected empty before any heading", first.Image.SectionTitle)
	}
	if second := doc.Entities[1]; second.Kind != models.EntityEmpty {
		t.Errorf("external blip entity = %s, expected empty", second.Kind)
	}
}

func TestOpenDocumentInfo(t *testing.T) {
	header := `<w:hdr xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:p><w:r><w:t> Project </w:t></w:r><w:r><w:t>Plan</w:t></w:r></w:p></w:hdr>`
	core := `<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/"><dc:title>Design</dc:title><dc:creator>Ops</dc:creator></cp:coreProperties>`

	doc, err := Open(writeTestDocx(t, para("", "x"), map[string][]byte{
		"word/header1.xml":  []byte(header),
		"docProps/core.xml": []byte(core),
	}))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	info := doc.Info
	if !info.HasHeader || info.HeaderText != "Project Plan" {
		t.Errorf("header = (%v, %q)", info.HasHeader, info.HeaderText)
	}
	if info.HasFooter {
		t.Error("expected no footer")
	}
	if info.Title != "Design" || info.Creator != "Ops" {
		t.Errorf("core = (%q, %q)", info.Title, info.Creator)
	}
}

func TestOpenNormalizesHangul(t *testing.T) {
	// U+1112 U+1161 U+11AB is the decomposed form of U+D55C
	doc, err := Open(writeTestDocx(t, para("", "\u1112\u1161\u11ab"), nil))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if got := doc.Entities[0].Text; got != "한" {
		t.Errorf("text = %q, expected composed syllable", got)
	}
}

func TestOpenMalformed(t *testing.T) {
	dir := t.TempDir()

	notZip := filepath.Join(dir, "plain.docx")
	if err := os.WriteFile(notZip, []byte("not a zip"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(notZip); err == nil {
		t.Error("expected error for non-zip file")
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create("[Content_Types].xml")
	w.Write([]byte(testContentTypes))
	zw.Close()
	missing := filepath.Join(dir, "missing.docx")
	if err := os.WriteFile(missing, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Open(missing)
	if !errors.Is(err, ErrMissingPart) {
		t.Errorf("expected ErrMissingPart, got %v", err)
	}
	if err != nil && !strings.Contains(err.Error(), "word/document.xml") {
		t.Errorf("error %q does not name the part", err)
	}

	if _, err := Open(filepath.Join(dir, "absent.docx")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestResolveRelativePath(t *testing.T) {
	tests := []struct {
		target   string
		expected string
	}{
		{"media/image1.png", "word/media/image1.png"},
		{"../media/image1.png", "media/image1.png"},
		{"/word/media/image1.png", "word/media/image1.png"},
	}

	for _, tt := range tests {
		result := resolveRelativePath(tt.target, "word")
		if result != tt.expected {
			t.Errorf("resolveRelativePath(%q) = %q, expected %q", tt.target, result, tt.expected)
		}
	}
}

func TestParseUnits(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"4000", 4000},
		{" 120 ", 120},
		{"", 0},
		{"auto", 0},
		{"-5", 0},
	}

	for _, tt := range tests {
		if result := parseDXA(tt.input); result != tt.expected {
			t.Errorf("parseDXA(%q) = %d, expected %d", tt.input, result, tt.expected)
		}
	}

	if got := PixelsToEMU(10); got != 95250 {
		t.Errorf("PixelsToEMU(10) = %d, expected 95250", got)
	}
}
