package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// PlanFile is the on-disk description of a study plan. YAML and JSON carry
// the same keys.
type PlanFile struct {
	Name      string          `json:"name,omitempty" yaml:"name,omitempty"`
	StartDate string          `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	Policy    string          `json:"policy,omitempty" yaml:"policy,omitempty"`
	Capacity  CapacityImport  `json:"capacity" yaml:"capacity"`
	Defaults  *DefaultsImport `json:"defaults,omitempty" yaml:"defaults,omitempty"`
	Subjects  []SubjectImport `json:"subjects" yaml:"subjects"`
}

type CapacityImport struct {
	WeekdayHours      *float64 `json:"weekday_hours" yaml:"weekday_hours"`
	WeekendHours      *float64 `json:"weekend_hours" yaml:"weekend_hours"`
	MaxDailyHours     *float64 `json:"max_daily_hours,omitempty" yaml:"max_daily_hours,omitempty"`
	PreferredTimeSlot string   `json:"preferred_time_slot,omitempty" yaml:"preferred_time_slot,omitempty"`
}

// DefaultsImport holds values that cascade to every subject that leaves the
// field out.
type DefaultsImport struct {
	Importance    string   `json:"importance,omitempty" yaml:"importance,omitempty"`
	Deadline      *string  `json:"deadline,omitempty" yaml:"deadline,omitempty"`
	RequiredHours *float64 `json:"required_hours,omitempty" yaml:"required_hours,omitempty"`
}

type SubjectImport struct {
	Name          string   `json:"name" yaml:"name"`
	Importance    string   `json:"importance,omitempty" yaml:"importance,omitempty"`
	Deadline      *string  `json:"deadline,omitempty" yaml:"deadline,omitempty"`
	RequiredHours *float64 `json:"required_hours,omitempty" yaml:"required_hours,omitempty"`
}

type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFor picks the file format from the extension. Anything that is not
// .json is read as YAML, which also accepts plain JSON.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// LoadPlanFile reads and parses a plan file.
func LoadPlanFile(path string) (*PlanFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodePlanFile(bytes.NewReader(data), FormatFor(path))
}

// DecodePlanFile parses a plan file. Unknown keys are rejected so that a
// typo never silently drops a subject field.
func DecodePlanFile(r io.Reader, format Format) (*PlanFile, error) {
	var file PlanFile
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&file); err != nil {
			return nil, fmt.Errorf("parsing plan file: %w", err)
		}
	default:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&file); err != nil {
			if err == io.EOF {
				return nil, fmt.Errorf("parsing plan file: empty document")
			}
			return nil, fmt.Errorf("parsing plan file: %w", err)
		}
	}
	return &file, nil
}

// EncodePlanFile writes a plan file in the given format.
func EncodePlanFile(w io.Writer, file *PlanFile, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(file); err != nil {
			return fmt.Errorf("encoding plan file: %w", err)
		}
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(file); err != nil {
			return fmt.Errorf("encoding plan file: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encoding plan file: %w", err)
		}
	}
	return nil
}

// WritePlanFile encodes a plan file to path, choosing the format from the
// extension.
func WritePlanFile(path string, file *PlanFile) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodePlanFile(f, file, FormatFor(path)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
