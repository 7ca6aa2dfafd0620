package doclayout

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ukaji3/doclayout-go/pkg/doclayout/config"
	"github.com/ukaji3/doclayout-go/pkg/doclayout/layout"
	"github.com/ukaji3/doclayout-go/pkg/doclayout/models"
	"github.com/ukaji3/doclayout-go/pkg/doclayout/parser"
	"github.com/ukaji3/doclayout-go/pkg/doclayout/widths"
)

// Analyze reads the DOCX file at path and returns its layout report.
func Analyze(path string, opts Options) (*models.Report, error) {
	cfg := opts.Settings()
	if err := cfg.Validate(); err != nil {
		return nil, NewAnalysisError(path, "config", err)
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, NewAnalysisError(path, "open", ErrFileNotFound)
		}
		return nil, NewAnalysisError(path, "open", err)
	}

	doc, err := parser.Open(path)
	if err != nil {
		// OS-level read failures are not a property of the document
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return nil, NewAnalysisError(path, "open", err)
		}
		return nil, NewAnalysisError(path, "parse", fmt.Errorf("%w: %w", ErrMalformedDocument, err))
	}
	opts.Logger.V(1).Info("parsed document", "file", doc.Name, "entities", len(doc.Entities))

	return AnalyzeDocument(doc, opts), nil
}

// AnalyzeDocument runs the layout pipeline over an extracted document.
func AnalyzeDocument(doc *parser.Document, opts Options) *models.Report {
	cfg := opts.Settings()
	log := opts.Logger.WithValues("file", doc.Name)

	elems := layout.NewBuilder(cfg).Build(doc.Entities)
	pages := layout.NewSimulator(cfg).Simulate(elems)
	issues := layout.NewDetector(cfg).Detect(elems, pages)
	log.V(1).Info("simulated layout", "elements", len(elems), "pages", len(pages), "issues", len(issues))

	report := &models.Report{
		File:          doc.Name,
		FileSize:      doc.Size,
		Document:      doc.Info,
		Stats:         collectStats(doc.Entities, elems, len(pages)),
		UsableHeight:  cfg.Usable(),
		Pages:         make([]models.PageSummary, 0, len(pages)),
		TableAnalyses: []models.TableReport{},
	}
	for _, p := range pages {
		report.Pages = append(report.Pages, p.Summary())
	}

	if opts.ShouldCheckStructure() {
		issues = append(issues, layout.CheckStructure(cfg, doc.Info, doc.Entities, elems)...)
		if tables := widths.NewAnalyzer(cfg).Analyze(doc.Entities); tables != nil {
			report.TableAnalyses = tables
		}
		log.V(1).Info("checked structure", "tables", len(report.TableAnalyses))
	}
	if issues == nil {
		issues = []models.Issue{}
	}
	report.Issues = issues

	if opts.ShouldIncludeElements() {
		report.Elements = make([]models.ElementSummary, 0, len(elems))
		for _, e := range elems {
			report.Elements = append(report.Elements, models.Summarize(e))
		}
	}

	report.Summary = models.CountBySeverity(report.AllIssues())
	return report
}

// collectStats counts the document content.
func collectStats(entities []models.Entity, elems []models.Element, pages int) models.Stats {
	stats := models.Stats{
		HeadingsByLevel: make(map[string]int),
		EstimatedPages:  pages,
	}

	for _, ent := range entities {
		switch ent.Kind {
		case models.EntityHeading, models.EntityParagraph, models.EntityBullet, models.EntityEmpty, models.EntityImage:
			stats.Paragraphs++
		}
	}

	for _, e := range elems {
		switch v := e.(type) {
		case models.Heading:
			stats.Headings++
			stats.HeadingsByLevel[fmt.Sprintf("h%d", v.Level)]++
		case models.Bullet:
			stats.Bullets++
		case models.Empty:
			stats.EmptyParagraphs++
		case models.Image:
			stats.Images++
		case models.PageBreak:
			stats.PageBreaks++
		case models.Table:
			switch {
			case v.TableKind.IsCode():
				stats.CodeBlocks++
			case v.TableKind == models.TableInfoBox:
				stats.InfoBoxes++
			case v.TableKind == models.TableWarningBox:
				stats.WarningBoxes++
			default:
				stats.Tables++
			}
		}
	}

	return stats
}

// LoadConfig builds the configuration from defaults, an optional JSON file
// and DOCLAYOUT_* environment overrides, in that order.
func LoadConfig(path, envFile string) (config.Config, error) {
	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	return config.ApplyEnv(cfg, envFile)
}
