package records

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
)

var timePtrType = reflect.TypeOf(&time.Time{})

// DecodeApplicants converts a normalized applicant table into record-store shapes.
func DecodeApplicants(t *Table) ([]Applicant, error) {
	return decodeRows[Applicant](t)
}

// DecodeJobs converts a normalized job table into record-store shapes.
func DecodeJobs(t *Table) ([]Job, error) {
	return decodeRows[Job](t)
}

// DecodeProspects converts a normalized prospect table into record-store shapes.
func DecodeProspects(t *Table) ([]Prospect, error) {
	return decodeRows[Prospect](t)
}

func decodeRows[T any](t *Table) ([]T, error) {
	out := make([]T, 0, t.Len())
	if t == nil {
		return out, nil
	}

	hook := mapstructure.ComposeDecodeHookFunc(
		blankTimeHook,
		mapstructure.StringToTimeHookFunc(time.RFC3339),
	)

	for i, row := range t.Rows {
		var item T
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &item,
			WeaklyTypedInput: true,
			DecodeHook:       hook,
		})
		if err != nil {
			return nil, err
		}
		if err := dec.Decode(map[string]any(row)); err != nil {
			return nil, fmt.Errorf("decoding %s row %d: %w", t.Kind, i, err)
		}
		out = append(out, item)
	}

	return out, nil
}

// blankTimeHook maps empty text in a nullable timestamp field to nil.
func blankTimeHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != timePtrType {
		return data, nil
	}
	if s, ok := data.(string); ok && strings.TrimSpace(s) == "" {
		return (*time.Time)(nil), nil
	}
	return data, nil
}
