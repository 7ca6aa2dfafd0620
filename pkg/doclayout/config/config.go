// Package config holds the page geometry, height model, glyph model and
// thresholds used by the layout engine.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Page geometry (landscape A4, points).
const (
	DefaultPageHeightPt   = 595.0
	DefaultMarginTopPt    = 54.0
	DefaultMarginBottomPt = 54.0
	DefaultHeaderFooterPt = 30.0
	// DefaultTotalTableWidthDXA is the full table width of the landscape template.
	DefaultTotalTableWidthDXA = 12960
)

// Element height model (points).
const (
	HeightH2           = 42.0
	HeightH3           = 34.0
	HeightH4           = 28.0
	HeightParagraph    = 22.0
	CharsPerLine       = 80
	HeightBullet       = 20.0
	HeightEmpty        = 8.0
	ImageSpacingPt     = 30.0
	EMUPerPoint        = 12700.0
	HeightCodeRow      = 16.0
	CodeBlockPaddingPt = 20.0
	HeightBox          = 45.0
	HeightTableHeader  = 28.0
	HeightTableRow     = 22.0
)

// Glyph width model (DXA).
const (
	WideGlyphDXA   = 180
	NarrowGlyphDXA = 90
	CellPaddingDXA = 120
)

// Column width thresholds.
const (
	ImbalanceUtilLow     = 0.50
	ImbalanceLinesMin    = 2.0
	WideWasteUtil        = 0.30
	WideWasteMinWidthDXA = 1500
	CellOverflowLines    = 4.0
	EmptyColumnRatio     = 0.80
	EmptyColumnMinRows   = 3
	MinReadableWidthDXA  = 600
	IdealWidthFactor     = 1.2
	MaxReadableColumns   = 8
	MinAnalyzedDataRows  = 2
	MinAnalyzedColumns   = 2
)

// Page layout thresholds.
const (
	OrphanHeadingRoomPt = 60.0
	TableSplitRoomRatio = 0.4
	SparsePagePct       = 15.0
	LongSectionPages    = 2.0
	SectionLevel        = 2
	BreakProximity      = 2
)

// Environment variables read by ApplyEnv.
const (
	EnvUsableHeight = "DOCLAYOUT_USABLE_HEIGHT"
	EnvTableWidth   = "DOCLAYOUT_TABLE_WIDTH"
	EnvWorkers      = "DOCLAYOUT_WORKERS"
)

// Heights is the per-kind height model.
type Heights struct {
	// Headings maps heading level to height; other levels use Paragraph.
	Headings         map[int]float64 `json:"headings"`
	Paragraph        float64         `json:"paragraph"`
	CharsPerLine     int             `json:"chars_per_line"`
	Bullet           float64         `json:"bullet"`
	Empty            float64         `json:"empty"`
	ImageSpacing     float64         `json:"image_spacing"`
	EMUPerPoint      float64         `json:"emu_per_point"`
	CodeRow          float64         `json:"code_row"`
	CodeBlockPadding float64         `json:"code_block_padding"`
	Box              float64         `json:"box"`
	TableHeader      float64         `json:"table_header"`
	TableRow         float64         `json:"table_row"`
}

// Glyphs is the character width model used for table cells.
type Glyphs struct {
	Wide        int `json:"wide"`
	Narrow      int `json:"narrow"`
	CellPadding int `json:"cell_padding"`
}

// WidthThresholds drive the column width analyzer.
type WidthThresholds struct {
	ImbalanceUtilLow    float64 `json:"imbalance_util_low"`
	ImbalanceLinesMin   float64 `json:"imbalance_lines_min"`
	WideWasteUtil       float64 `json:"wide_waste_util"`
	WideWasteMinWidth   int     `json:"wide_waste_min_width"`
	CellOverflowLines   float64 `json:"cell_overflow_lines"`
	EmptyColumnRatio    float64 `json:"empty_column_ratio"`
	EmptyColumnMinRows  int     `json:"empty_column_min_rows"`
	MinReadableWidth    int     `json:"min_readable_width"`
	IdealWidthFactor    float64 `json:"ideal_width_factor"`
	MaxReadableColumns  int     `json:"max_readable_columns"`
	MinAnalyzedDataRows int     `json:"min_analyzed_data_rows"`
	MinAnalyzedColumns  int     `json:"min_analyzed_columns"`
}

// LayoutThresholds drive the anomaly detector.
type LayoutThresholds struct {
	OrphanHeadingRoom   float64 `json:"orphan_heading_room"`
	TableSplitRoomRatio float64 `json:"table_split_room_ratio"`
	SparsePagePct       float64 `json:"sparse_page_pct"`
	LongSectionPages    float64 `json:"long_section_pages"`
	SectionLevel        int     `json:"section_level"`
	BreakProximity      int     `json:"break_proximity"`
}

// Palette lists the first-cell fills that identify non-data tables.
type Palette struct {
	CodeDark   []string `json:"code_dark"`
	CodeLight  []string `json:"code_light"`
	InfoBox    []string `json:"info_box"`
	WarningBox []string `json:"warning_box"`
}

// Config bundles every tunable of one analysis run. Values are copied into
// each stage; nothing mutates a Config after construction.
type Config struct {
	PageHeight   float64 `json:"page_height"`
	MarginTop    float64 `json:"margin_top"`
	MarginBottom float64 `json:"margin_bottom"`
	HeaderFooter float64 `json:"header_footer"`
	// UsableHeight overrides the derived budget when non-zero.
	UsableHeight    float64          `json:"usable_height,omitempty"`
	TotalTableWidth int              `json:"total_table_width"`
	Heights         Heights          `json:"heights"`
	Glyphs          Glyphs           `json:"glyphs"`
	Widths          WidthThresholds  `json:"widths"`
	Layout          LayoutThresholds `json:"layout"`
	Palette         Palette          `json:"palette"`
	// Workers bounds batch parallelism (0 means one per CPU).
	Workers int `json:"workers,omitempty"`
}

// Default returns the landscape A4 configuration.
func Default() Config {
	return Config{
		PageHeight:      DefaultPageHeightPt,
		MarginTop:       DefaultMarginTopPt,
		MarginBottom:    DefaultMarginBottomPt,
		HeaderFooter:    DefaultHeaderFooterPt,
		TotalTableWidth: DefaultTotalTableWidthDXA,
		Heights: Heights{
			Headings:         map[int]float64{2: HeightH2, 3: HeightH3, 4: HeightH4},
			Paragraph:        HeightParagraph,
			CharsPerLine:     CharsPerLine,
			Bullet:           HeightBullet,
			Empty:            HeightEmpty,
			ImageSpacing:     ImageSpacingPt,
			EMUPerPoint:      EMUPerPoint,
			CodeRow:          HeightCodeRow,
			CodeBlockPadding: CodeBlockPaddingPt,
			Box:              HeightBox,
			TableHeader:      HeightTableHeader,
			TableRow:         HeightTableRow,
		},
		Glyphs: Glyphs{
			Wide:        WideGlyphDXA,
			Narrow:      NarrowGlyphDXA,
			CellPadding: CellPaddingDXA,
		},
		Widths: WidthThresholds{
			ImbalanceUtilLow:    ImbalanceUtilLow,
			ImbalanceLinesMin:   ImbalanceLinesMin,
			WideWasteUtil:       WideWasteUtil,
			WideWasteMinWidth:   WideWasteMinWidthDXA,
			CellOverflowLines:   CellOverflowLines,
			EmptyColumnRatio:    EmptyColumnRatio,
			EmptyColumnMinRows:  EmptyColumnMinRows,
			MinReadableWidth:    MinReadableWidthDXA,
			IdealWidthFactor:    IdealWidthFactor,
			MaxReadableColumns:  MaxReadableColumns,
			MinAnalyzedDataRows: MinAnalyzedDataRows,
			MinAnalyzedColumns:  MinAnalyzedColumns,
		},
		Layout: LayoutThresholds{
			OrphanHeadingRoom:   OrphanHeadingRoomPt,
			TableSplitRoomRatio: TableSplitRoomRatio,
			SparsePagePct:       SparsePagePct,
			LongSectionPages:    LongSectionPages,
			SectionLevel:        SectionLevel,
			BreakProximity:      BreakProximity,
		},
		Palette: Palette{
			CodeDark:   []string{"1E1E1E", "2D2D2D", "1A1A1A", "1A202C", "1B2B2B", "1E1A1C"},
			CodeLight:  []string{"F5F5F5", "EAEAEA", "F0F0F0", "FAFAFA", "EDF2F7", "E6F4F4", "F5EDED", "E9F1F8", "F7FAFC", "F0F9F9", "FAF5F5", "F5F8FC"},
			InfoBox:    []string{"E8F0F7", "E8F4FD", "EBF4FF", "E0F5F5", "F5EDF0", "DEEAF6"},
			WarningBox: []string{"FEF6E6", "FFF8E1", "FFF3CD", "FFFBEB", "FFF5EB"},
		},
	}
}

// Usable returns the packing budget: page height minus margins and the
// header/footer reservation, unless UsableHeight overrides it.
func (c Config) Usable() float64 {
	if c.UsableHeight > 0 {
		return c.UsableHeight
	}
	return c.PageHeight - c.MarginTop - c.MarginBottom - c.HeaderFooter
}

// HeadingHeight returns the estimated height of a heading of the given level.
func (c Config) HeadingHeight(level int) float64 {
	if h, ok := c.Heights.Headings[level]; ok {
		return h
	}
	return c.Heights.Paragraph
}

// Validate checks that the geometry can drive a simulation.
func (c Config) Validate() error {
	if c.Usable() <= 0 {
		return fmt.Errorf("usable height must be positive, got %.1f", c.Usable())
	}
	if c.TotalTableWidth <= 0 {
		return fmt.Errorf("total table width must be positive, got %d", c.TotalTableWidth)
	}
	if c.Heights.CharsPerLine <= 0 {
		return errors.New("chars per line must be positive")
	}
	if c.Heights.EMUPerPoint <= 0 {
		return errors.New("emu per point must be positive")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}

// Load reads a JSON configuration file over the defaults. Fields absent from
// the file keep their default value.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.Palette = cfg.Palette.normalized()
	return cfg, cfg.Validate()
}

// ApplyEnv overrides the geometry from DOCLAYOUT_* variables. When envFile
// is non-empty it is loaded first; variables already set in the process
// environment win over the file.
func ApplyEnv(cfg Config, envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return cfg, fmt.Errorf("loading env file: %w", err)
		}
	}

	if v := os.Getenv(EnvUsableHeight); v != "" {
		h, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s %q: %w", EnvUsableHeight, v, err)
		}
		cfg.UsableHeight = h
	}
	if v := os.Getenv(EnvTableWidth); v != "" {
		w, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s %q: %w", EnvTableWidth, v, err)
		}
		cfg.TotalTableWidth = w
	}
	if v := os.Getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s %q: %w", EnvWorkers, v, err)
		}
		cfg.Workers = n
	}

	return cfg, cfg.Validate()
}

func (p Palette) normalized() Palette {
	return Palette{
		CodeDark:   upperAll(p.CodeDark),
		CodeLight:  upperAll(p.CodeLight),
		InfoBox:    upperAll(p.InfoBox),
		WarningBox: upperAll(p.WarningBox),
	}
}

func upperAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToUpper(strings.TrimPrefix(s, "#"))
	}
	return out
}
