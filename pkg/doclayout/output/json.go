// Package output renders layout reports as JSON, text and spreadsheets.
package output

import (
	"encoding/json"

	"github.com/ukaji3/doclayout-go/pkg/doclayout/models"
)

// ToJSON serializes a report.
func ToJSON(report *models.Report, pretty bool) ([]byte, error) {
	return marshal(report, pretty)
}

// BatchToJSON serializes batch results.
func BatchToJSON(results []models.BatchResult, pretty bool) ([]byte, error) {
	if results == nil {
		results = []models.BatchResult{}
	}
	return marshal(results, pretty)
}

func marshal(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
