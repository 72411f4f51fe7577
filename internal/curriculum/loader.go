package curriculum

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
)

// fileSchema describes a custom curriculum file.
const fileSchema = `{
  "type": "object",
  "required": ["lessons"],
  "properties": {
    "minAppVersion": {"type": "string"},
    "lessons": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["id", "title", "topic", "problems", "xpReward"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "title": {"type": "string", "minLength": 1},
          "description": {"type": "string"},
          "icon": {"type": "string"},
          "difficulty": {"enum": ["Beginner", "Intermediate", "Advanced"]},
          "topic": {"enum": ["algebra", "geometry", "calculus"]},
          "xpReward": {"type": "integer", "minimum": 1},
          "prerequisites": {"type": "array", "items": {"type": "string"}},
          "problems": {
            "type": "array",
            "minItems": 1,
            "items": {
              "type": "object",
              "required": ["question", "answer"],
              "properties": {
                "question": {"type": "string", "minLength": 1},
                "answer": {"$ref": "#/$defs/answer"},
                "unit": {"type": "string"},
                "choices": {"type": "array", "items": {"$ref": "#/$defs/scalar"}}
              }
            }
          }
        }
      }
    }
  },
  "$defs": {
    "scalar": {"type": ["number", "string", "boolean"]},
    "answer": {
      "oneOf": [
        {"$ref": "#/$defs/scalar"},
        {"type": "array", "minItems": 1, "items": {"$ref": "#/$defs/scalar"}}
      ]
    }
  }
}`

const fileSchemaURL = "schema://curriculum.json"

// File is the on-disk form of a custom curriculum.
type File struct {
	MinAppVersion string   `json:"minAppVersion,omitempty"`
	Lessons       []Lesson `json:"lessons"`
}

// VersionError is returned when a curriculum file needs a newer build.
type VersionError struct {
	Required string
	Running  string
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("curriculum requires version %s or later (running %s)", e.Required, e.Running)
}

// LoadFile reads, validates and indexes a custom curriculum file.
// appVersion is the running build version; development builds skip the
// minimum version check.
func LoadFile(path, appVersion string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read curriculum: %w", err)
	}
	return Parse(data, appVersion)
}

// Parse validates raw curriculum JSON and builds a catalog from it.
func Parse(data []byte, appVersion string) (*Catalog, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse curriculum: %w", err)
	}
	schema, err := compileFileSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("curriculum schema: %w", err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode curriculum: %w", err)
	}
	if err := checkVersion(f.MinAppVersion, appVersion); err != nil {
		return nil, err
	}
	return New(f.Lessons)
}

func compileFileSchema() (*jsonschema.Schema, error) {
	def, err := jsonschema.UnmarshalJSON(strings.NewReader(fileSchema))
	if err != nil {
		return nil, fmt.Errorf("parse curriculum schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(fileSchemaURL, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(fileSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile curriculum schema: %w", err)
	}
	return compiled, nil
}

func checkVersion(required, running string) error {
	if required == "" {
		return nil
	}
	req := canonical(required)
	if !semver.IsValid(req) {
		return fmt.Errorf("invalid minAppVersion %q", required)
	}
	run := canonical(running)
	if !semver.IsValid(run) {
		// Development builds carry no semantic version.
		return nil
	}
	if semver.Compare(run, req) < 0 {
		return &VersionError{Required: req, Running: run}
	}
	return nil
}

func canonical(v string) string {
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
