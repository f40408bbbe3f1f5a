package annotator

import (
	"strings"

	"github.com/moamenhredeen/oascurl/internal/config"
	"github.com/moamenhredeen/oascurl/internal/generator"
	"github.com/moamenhredeen/oascurl/internal/models"
	"github.com/moamenhredeen/oascurl/internal/parser"
	"go.yaml.in/yaml/v3"
)

// Methods lists the path item keys treated as operations
var Methods = []string{"get", "post", "put", "patch", "delete", "head", "options"}

// methodPriority is the lookup order used by DetermineMethod
var methodPriority = []string{"get", "post", "put", "patch", "delete"}

// EventType represents the type of annotation event
type EventType int

const (
	// EventAdded indicates a curl sample was inserted at the front
	EventAdded EventType = iota
	// EventUpdated indicates an existing curl sample was rewritten in place
	EventUpdated
	// EventSkipped indicates a path item was not a mapping
	EventSkipped
)

// AnnotateEvent represents an event during an annotation pass
type AnnotateEvent struct {
	Type   EventType
	Path   string
	Change *models.Change // nil for Skipped events
}

// OnAnnotateEvent is a callback function for annotation events
type OnAnnotateEvent func(event AnnotateEvent)

// Annotator attaches unix socket curl samples to OpenAPI operations
type Annotator struct {
	generator *generator.Generator
	extension string
	lang      string
}

// NewAnnotator creates an annotator writing samples under extension with
// the given lang. Empty values fall back to x-codeSamples and curl.
func NewAnnotator(gen *generator.Generator, extension, lang string) *Annotator {
	if gen == nil {
		gen = generator.NewGenerator("", "")
	}
	if extension == "" {
		extension = config.DefaultExtension
	}
	if lang == "" {
		lang = config.DefaultLang
	}
	return &Annotator{
		generator: gen,
		extension: extension,
		lang:      lang,
	}
}

// DetermineMethod returns the first of get, post, put, patch and delete
// present in pathItem, or "" when there is none
func DetermineMethod(pathItem *yaml.Node) string {
	for _, method := range methodPriority {
		if _, ok := parser.Lookup(pathItem, method); ok {
			return method
		}
	}
	return ""
}

// IsMethod reports whether key names an operation in a path item
func IsMethod(key string) bool {
	for _, m := range Methods {
		if key == m {
			return true
		}
	}
	return false
}

// AnnotateOperation makes sure operation carries exactly one curl sample
// for path and method. An existing curl entry is replaced where it stands;
// otherwise the new entry goes to the front. It returns false only when
// operation is not a mapping.
func (a *Annotator) AnnotateOperation(operation *yaml.Node, path, method string) (models.Change, bool) {
	if !parser.IsMapping(operation) {
		return models.Change{}, false
	}

	change := models.Change{
		Path:   path,
		Method: strings.ToUpper(method),
		Source: a.generator.BuildCommand(path, method),
	}
	if id, ok := parser.Lookup(operation, "operationId"); ok {
		change.OperationID, _ = parser.StringValue(id)
	}

	samples, ok := parser.Lookup(operation, a.extension)
	if !ok {
		samples = parser.NewSequence()
		parser.Set(operation, a.extension, samples)
	} else if !parser.IsSequence(samples) {
		// Anything other than a list is dropped and started over
		samples = parser.NewSequence()
		parser.Set(operation, a.extension, samples)
		change.Recreated = true
	}
	samples = parser.Resolve(samples)

	entry := a.newSample(change.Source)

	if i := a.findSample(samples); i >= 0 {
		samples.Content[i] = entry
		change.Kind = models.ChangeUpdated
		change.Index = i
	} else {
		samples.Content = append([]*yaml.Node{entry}, samples.Content...)
		change.Kind = models.ChangeAdded
		change.Index = 0
	}

	return change, true
}

// AnnotateDocument annotates every operation under the document's paths.
// Path items that are not mappings are skipped, as are keys that do not
// name a method.
func (a *Annotator) AnnotateDocument(doc *parser.Document, onEvent OnAnnotateEvent) models.Summary {
	summary := models.Summary{
		File:    doc.Path(),
		Changes: []models.Change{},
	}

	for _, item := range doc.PathItems() {
		summary.TotalPaths++

		if !parser.IsMapping(item.Value) {
			summary.SkippedPaths++
			if onEvent != nil {
				onEvent(AnnotateEvent{Type: EventSkipped, Path: item.Key})
			}
			continue
		}

		for _, op := range parser.Pairs(item.Value) {
			if !IsMethod(op.Key) {
				continue
			}

			change, ok := a.AnnotateOperation(op.Value, item.Key, op.Key)
			if !ok {
				continue
			}
			summary.AddChange(change)

			if onEvent != nil {
				eventType := EventAdded
				if change.Kind == models.ChangeUpdated {
					eventType = EventUpdated
				}
				onEvent(AnnotateEvent{Type: eventType, Path: item.Key, Change: &change})
			}
		}
	}

	return summary
}

// findSample returns the index of the first mapping whose lang matches the
// annotator's lang case-insensitively, or -1
func (a *Annotator) findSample(samples *yaml.Node) int {
	for i, sample := range samples.Content {
		if !parser.IsMapping(sample) {
			continue
		}
		langNode, ok := parser.Lookup(sample, "lang")
		if !ok {
			continue
		}
		if lang, ok := parser.StringValue(langNode); ok && strings.EqualFold(lang, a.lang) {
			return i
		}
	}
	return -1
}

func (a *Annotator) newSample(source string) *yaml.Node {
	sourceNode := parser.NewString(source)
	sourceNode.Style = yaml.LiteralStyle

	return parser.NewMapping(
		parser.KeyValue{Key: "lang", Value: parser.NewString(a.lang)},
		parser.KeyValue{Key: "source", Value: sourceNode},
	)
}
