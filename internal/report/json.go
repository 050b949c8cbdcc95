package report

import (
	"encoding/json"
	"io"

	"github.com/alyssa-glean/detekt/internal/model"
)

// WriteJSON streams the full result, indented, to w.
func WriteJSON(w io.Writer, res *model.AnalysisResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
