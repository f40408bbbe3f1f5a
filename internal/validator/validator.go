package validator

import (
	"fmt"
	"os"
	"strings"

	"github.com/moamenhredeen/oascurl/internal/config"
	apperrors "github.com/moamenhredeen/oascurl/internal/errors"
	"github.com/moamenhredeen/oascurl/internal/generator"
	"github.com/moamenhredeen/oascurl/internal/models"
	"github.com/pb33f/libopenapi"
	v3 "github.com/pb33f/libopenapi/datamodel/high/v3"
)

// Validator checks that every operation of an OpenAPI document carries the
// expected unix socket curl sample
type Validator struct {
	generator *generator.Generator
	extension string
	lang      string
}

// NewValidator creates a new validator
func NewValidator(gen *generator.Generator, extension, lang string) *Validator {
	if gen == nil {
		gen = generator.NewGenerator("", "")
	}
	if extension == "" {
		extension = config.DefaultExtension
	}
	if lang == "" {
		lang = config.DefaultLang
	}
	return &Validator{
		generator: gen,
		extension: extension,
		lang:      lang,
	}
}

// CheckFile reads filePath and checks it
func (v *Validator) CheckFile(filePath string) (models.CheckSummary, error) {
	specBytes, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.CheckSummary{}, apperrors.Wrap(apperrors.ErrFileNotFound, filePath)
		}
		return models.CheckSummary{}, apperrors.WrapCause(apperrors.ErrRead, filePath, err)
	}
	if len(specBytes) == 0 {
		return models.CheckSummary{}, apperrors.Wrap(apperrors.ErrEmptyInput, filePath)
	}
	return v.Check(specBytes)
}

// Check builds the v3 model of specBytes and inspects every operation
func (v *Validator) Check(specBytes []byte) (models.CheckSummary, error) {
	var summary models.CheckSummary

	document, err := libopenapi.NewDocument(specBytes)
	if err != nil {
		return summary, fmt.Errorf("%w: failed to parse OpenAPI document: %w", apperrors.ErrParse, err)
	}

	model, errs := document.BuildV3Model()
	if errs != nil {
		return summary, fmt.Errorf("%w: failed to build v3 model: %v", apperrors.ErrParse, errs)
	}

	paths := model.Model.Paths
	if paths == nil || paths.PathItems == nil {
		return summary, nil
	}

	for pair := paths.PathItems.First(); pair != nil; pair = pair.Next() {
		path := pair.Key()
		item := pair.Value()
		if item == nil {
			continue
		}

		for _, entry := range operations(item) {
			if entry.op == nil {
				continue
			}
			summary.AddFinding(v.inspect(path, entry.method, entry.op))
		}
	}

	return summary, nil
}

type methodOperation struct {
	method string
	op     *v3.Operation
}

// operations lists the operations of item in the order they are annotated
func operations(item *v3.PathItem) []methodOperation {
	return []methodOperation{
		{"get", item.Get},
		{"post", item.Post},
		{"put", item.Put},
		{"patch", item.Patch},
		{"delete", item.Delete},
		{"head", item.Head},
		{"options", item.Options},
	}
}

func (v *Validator) inspect(path, method string, op *v3.Operation) models.Finding {
	finding := models.Finding{
		Path:        path,
		Method:      strings.ToUpper(method),
		OperationID: op.OperationId,
	}

	samples, err := v.codeSamples(op)
	if err != nil {
		finding.Problem = err.Error()
		return finding
	}

	expected := v.generator.BuildCommand(path, method)
	var stale bool
	for _, s := range samples {
		if !strings.EqualFold(s.Lang, v.lang) {
			continue
		}
		finding.CurlCount++
		if s.Source != expected {
			stale = true
		}
	}

	switch {
	case finding.CurlCount == 0:
		finding.Problem = fmt.Sprintf("no %s sample in %s", v.lang, v.extension)
	case finding.CurlCount > 1:
		finding.Problem = fmt.Sprintf("%d %s samples in %s", finding.CurlCount, v.lang, v.extension)
	case stale:
		finding.Problem = fmt.Sprintf("%s sample does not match the unix socket command", v.lang)
	default:
		finding.Compliant = true
	}

	return finding
}

// codeSamples returns the mapping entries of the sample list. Other entries
// are left alone by the annotator, so they are not counted here either.
func (v *Validator) codeSamples(op *v3.Operation) ([]models.CodeSample, error) {
	if op.Extensions == nil {
		return nil, nil
	}

	for pair := op.Extensions.First(); pair != nil; pair = pair.Next() {
		if pair.Key() != v.extension {
			continue
		}
		var entries []any
		if err := pair.Value().Decode(&entries); err != nil {
			return nil, fmt.Errorf("%s is not a list of code samples", v.extension)
		}

		samples := make([]models.CodeSample, 0, len(entries))
		for _, entry := range entries {
			m, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			lang, ok := m["lang"].(string)
			if !ok {
				continue
			}
			source, _ := m["source"].(string)
			samples = append(samples, models.CodeSample{Lang: lang, Source: source})
		}
		return samples, nil
	}
	return nil, nil
}
