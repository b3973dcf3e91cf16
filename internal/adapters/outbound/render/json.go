package render

import (
	"encoding/json"

	"github.com/codewarden/codewarden/internal/domain"
)

// JSON renders the report as indented JSON. This is the format stored
// in the report cache, so it round-trips through domain.Report.
func JSON(report *domain.Report) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}
