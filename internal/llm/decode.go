package llm

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/joseph-ayodele/rider-parser/internal/entity"
)

var (
	riderSchema         = BuildRiderJSONSchema()
	compiledRiderSchema = MustCompileSchema(riderSchema)
)

// DecodeRider turns a model reply into a rider: sanitize, validate strictly, and
// when that fails and lenient is set, repair the document and validate again.
func DecodeRider(content []byte, lenient bool, logger *slog.Logger, reqID string) (*entity.StructuredRider, error) {
	if logger == nil {
		logger = slog.Default()
	}

	doc, _, err := NormalizeAndSanitizeJSON(content, logger)
	if err != nil {
		logger.Error("llm.extract.sanitize_failed", "req_id", reqID, "error", err)
		return nil, fmt.Errorf("sanitize failed: %w", err)
	}

	if err := ValidateJSON(compiledRiderSchema, doc); err != nil {
		if !lenient {
			logger.Error("llm.extract.schema_validation_failed", "req_id", reqID, "error", err)
			return nil, fmt.Errorf("schema validation failed: %w", err)
		}
		cleaned, dropped, sErr := SanitizeOptionalFields(doc)
		if sErr != nil {
			logger.Error("llm.extract.lenient_failed", "req_id", reqID, "error", sErr)
			return nil, fmt.Errorf("lenient sanitize failed: %w", sErr)
		}
		if vErr := ValidateJSON(compiledRiderSchema, cleaned); vErr != nil {
			logger.Error("llm.extract.schema_validation_failed", "req_id", reqID, "error", vErr)
			return nil, fmt.Errorf("schema validation failed: %w", vErr)
		}
		logger.Warn("llm.extract.lenient_sanitize_applied", "req_id", reqID, "dropped", dropped)
		doc = cleaned
	}

	var out entity.StructuredRider
	if err := json.Unmarshal(doc, &out); err != nil {
		logger.Error("llm.extract.unmarshal_failed", "req_id", reqID, "error", err)
		return nil, fmt.Errorf("unmarshal rider: %w", err)
	}
	return &out, nil
}

func mustJSON(v any) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// SchemaPrompt is the schema rendered for inclusion in a prompt.
func SchemaPrompt() string {
	return "JSON Schema:\n" + mustJSON(riderSchema)
}
