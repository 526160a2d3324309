package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/invopop/jsonschema"
	validator "github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"speakerline/internal/qa"
	"speakerline/internal/services"
)

// Kind selects a snapshot type.
type Kind string

const (
	KindTranscript Kind = "transcript"
	KindQA         Kind = "qa"
)

// ParseKind accepts "transcript" or "qa".
func ParseKind(value string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(value))) {
	case KindTranscript:
		return KindTranscript, nil
	case KindQA:
		return KindQA, nil
	default:
		return "", services.InvalidArgument("snapshot", "kind", "unknown snapshot kind %q (want transcript or qa)", value)
	}
}

var printer = message.NewPrinter(language.English)

var speakerTextsType = reflect.TypeOf(qa.SpeakerTexts{})

func reflector() *jsonschema.Reflector {
	return &jsonschema.Reflector{
		Anonymous:                 true,
		DoNotReference:            true,
		AllowAdditionalProperties: false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t == speakerTextsType {
				return &jsonschema.Schema{
					Type:                 "object",
					AdditionalProperties: &jsonschema.Schema{Type: "string"},
				}
			}
			return nil
		},
	}
}

func prototype(kind Kind) (any, error) {
	switch kind {
	case KindTranscript:
		return &Transcript{}, nil
	case KindQA:
		return &QA{}, nil
	default:
		return nil, services.InvalidArgument("snapshot", "schema", "unknown snapshot kind %q", kind)
	}
}

// Schema returns the JSON Schema document for kind.
func Schema(kind Kind) ([]byte, error) {
	v, err := prototype(kind)
	if err != nil {
		return nil, err
	}
	schema := reflector().Reflect(v)
	schema.Title = fmt.Sprintf("speakerline %s snapshot", kind)
	return json.MarshalIndent(schema, "", "  ")
}

type compiled struct {
	once   sync.Once
	schema *validator.Schema
	err    error
}

var compiledSchemas = map[Kind]*compiled{
	KindTranscript: {},
	KindQA:         {},
}

func compiledSchema(kind Kind) (*validator.Schema, error) {
	entry, ok := compiledSchemas[kind]
	if !ok {
		return nil, services.InvalidArgument("snapshot", "schema", "unknown snapshot kind %q", kind)
	}
	entry.once.Do(func() {
		entry.schema, entry.err = compile(kind)
	})
	return entry.schema, entry.err
}

func compile(kind Kind) (*validator.Schema, error) {
	raw, err := Schema(kind)
	if err != nil {
		return nil, err
	}
	doc, err := validator.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse %s schema: %w", kind, err)
	}
	name := string(kind) + ".schema.json"
	compiler := validator.NewCompiler()
	if err := compiler.AddResource(name, doc); err != nil {
		return nil, fmt.Errorf("add %s schema: %w", kind, err)
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("compile %s schema: %w", kind, err)
	}
	return schema, nil
}

// Validate checks a JSON document against the schema for kind and returns
// one issue per failing location. A nil slice means the document is valid.
func Validate(kind Kind, data []byte) ([]string, error) {
	schema, err := compiledSchema(kind)
	if err != nil {
		return nil, err
	}
	instance, err := validator.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return []string{fmt.Sprintf("JSON parse error: %v", err)}, nil
	}
	return validateInstance(schema, instance), nil
}

func validateInstance(schema *validator.Schema, instance any) []string {
	err := schema.Validate(instance)
	if err == nil {
		return nil
	}
	ve, ok := err.(*validator.ValidationError)
	if !ok {
		return []string{fmt.Sprintf("schema: %v", err)}
	}
	var issues []string
	collectIssues(ve, &issues)
	return issues
}

func collectIssues(ve *validator.ValidationError, issues *[]string) {
	if len(ve.Causes) == 0 {
		loc := "/" + strings.Join(ve.InstanceLocation, "/")
		*issues = append(*issues, fmt.Sprintf("%s: %s", loc, ve.ErrorKind.LocalizedString(printer)))
		return
	}
	for _, cause := range ve.Causes {
		collectIssues(cause, issues)
	}
}
