package api

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// quizSchema is the wire contract for quiz payloads. Validation runs
// before decoding into engine types so a malformed question surfaces
// as a PayloadError at the fetch boundary instead of a nil-field
// panic mid-quiz. Question types are deliberately unconstrained here:
// unknown discriminants must survive decode (the engine renders them
// as inert placeholders).
const quizSchema = `{
  "type": "object",
  "required": ["questions"],
  "properties": {
    "lessonTitle": {"type": "string"},
    "questions": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["questionType", "questionText"],
        "properties": {
          "_id": {"type": "string"},
          "questionType": {"type": "string"},
          "questionText": {"type": "string"},
          "sentence": {"type": "string"},
          "options": {"type": "array"}
        }
      }
    }
  }
}`

var (
	compileOnce   sync.Once
	compiledQuiz  *jsonschema.Schema
	compileFailed error
)

// validateQuizPayload checks raw against the quiz schema.
func validateQuizPayload(raw json.RawMessage) error {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(quizSchema))
		if err != nil {
			compileFailed = fmt.Errorf("parse quiz schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://quiz.json", doc); err != nil {
			compileFailed = fmt.Errorf("add quiz schema: %w", err)
			return
		}
		compiledQuiz, compileFailed = c.Compile("schema://quiz.json")
	})
	if compileFailed != nil {
		return compileFailed
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := compiledQuiz.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
