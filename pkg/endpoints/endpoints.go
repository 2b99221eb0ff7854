package endpoints

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Package endpoints contains declarative Kuda endpoint specs (YAML/JSON) helpers.

// Field maps one stable payload key to a dot path into a JSON document.
type Field struct {
	Key      string `json:"key" yaml:"key"`
	Path     string `json:"path" yaml:"path"`
	Optional bool   `json:"optional" yaml:"optional"`
}

// Spec describes one remote operation: how to recognize a successful
// response and which fields to lift into the normalized payload.
type Spec struct {
	ServiceType     string   `json:"service_type" yaml:"service_type"`
	Name            string   `json:"name" yaml:"name"`
	SuccessStatus   int      `json:"success_status" yaml:"success_status"`
	CheckStatusFlag bool     `json:"check_status_flag" yaml:"check_status_flag"`
	Require         []string `json:"require" yaml:"require"`
	Fields          []Field  `json:"fields" yaml:"fields"`
	Echo            []Field  `json:"echo" yaml:"echo"`
}

type specsFile struct {
	Endpoints []Spec `json:"endpoints" yaml:"endpoints"`
}

// Registry is a concurrency-safe spec collection indexed by service type
// and by operation name.
type Registry struct {
	mu     sync.RWMutex
	byType map[string]Spec
	byName map[string]Spec
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		byType: make(map[string]Spec),
		byName: make(map[string]Spec),
	}
}

// Defaults returns a registry preloaded with the built-in Kuda endpoints.
func Defaults() *Registry {
	r := New()
	for _, s := range builtins {
		r.put(sanitizeSpec(s))
	}
	return r
}

// ByServiceType returns the spec registered under the given service type.
func (r *Registry) ByServiceType(serviceType string) (Spec, bool) {
	serviceType = strings.TrimSpace(serviceType)
	if serviceType == "" {
		return Spec{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.byType == nil {
		return Spec{}, false
	}

	s, ok := r.byType[serviceType]
	return s, ok
}

// ByName returns the spec registered under the given operation name.
func (r *Registry) ByName(name string) (Spec, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Spec{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.byName == nil {
		return Spec{}, false
	}

	s, ok := r.byName[name]
	return s, ok
}

// All returns a copy of the registered specs, ordered by operation name.
func (r *Registry) All() []Spec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.byType) == 0 {
		return nil
	}

	out := make([]Spec, 0, len(r.byType))
	for _, s := range r.byType {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Register validates the spec and upserts it, replacing any entry sharing
// its service type or name.
func (r *Registry) Register(s Spec) error {
	s = sanitizeSpec(s)
	if err := validateSpec(s); err != nil {
		return err
	}

	r.mu.Lock()
	r.put(s)
	r.mu.Unlock()
	return nil
}

// Apply upserts the given specs in order.
func (r *Registry) Apply(specs ...Spec) error {
	for i := range specs {
		if err := r.Register(specs[i]); err != nil {
			return fmt.Errorf("endpoint[%d]: %w", i, err)
		}
	}
	return nil
}

// Load reads an endpoints file and upserts its specs over the registry.
func (r *Registry) Load(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("endpoints file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open endpoints file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read endpoints file: %w", err)
	}

	doc, err := parseSpecs(raw, filepath.Ext(path))
	if err != nil {
		return err
	}

	if len(doc.Endpoints) == 0 {
		return errors.New("endpoints file contains no endpoints entries")
	}

	seenType := make(map[string]struct{}, len(doc.Endpoints))
	seenName := make(map[string]struct{}, len(doc.Endpoints))
	specs := make([]Spec, 0, len(doc.Endpoints))
	for i := range doc.Endpoints {
		s := sanitizeSpec(doc.Endpoints[i])
		if err := validateSpec(s); err != nil {
			return fmt.Errorf("endpoint[%d]: %w", i, err)
		}
		if _, exists := seenType[s.ServiceType]; exists {
			return fmt.Errorf("duplicate endpoint service type %q", s.ServiceType)
		}
		if _, exists := seenName[s.Name]; exists {
			return fmt.Errorf("duplicate endpoint name %q", s.Name)
		}
		seenType[s.ServiceType] = struct{}{}
		seenName[s.Name] = struct{}{}
		specs = append(specs, s)
	}

	r.mu.Lock()
	for _, s := range specs {
		r.put(s)
	}
	r.mu.Unlock()

	return nil
}

// put stores the spec under both indexes; the caller holds the write lock
// (or owns the registry exclusively).
func (r *Registry) put(s Spec) {
	if r.byType == nil {
		r.byType = make(map[string]Spec)
	}
	if r.byName == nil {
		r.byName = make(map[string]Spec)
	}

	if old, ok := r.byType[s.ServiceType]; ok && old.Name != s.Name {
		delete(r.byName, old.Name)
	}
	if old, ok := r.byName[s.Name]; ok && old.ServiceType != s.ServiceType {
		delete(r.byType, old.ServiceType)
	}

	r.byType[s.ServiceType] = s
	r.byName[s.Name] = s
}

func parseSpecs(data []byte, ext string) (specsFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   unmarshalFn
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		if doc, err := unmarshalSpecs(d.name, data, d.fn); err == nil {
			return doc, nil
		}
	}

	return specsFile{}, errors.New("endpoints file format not recognized (expected YAML or JSON)")
}

type unmarshalFn func([]byte, any) error

func unmarshalSpecs(name string, data []byte, fn unmarshalFn) (specsFile, error) {
	var doc specsFile
	if err := fn(data, &doc); err != nil {
		return specsFile{}, fmt.Errorf("decode %s endpoints: %w", name, err)
	}
	return doc, nil
}

func sanitizeSpec(s Spec) Spec {
	s.ServiceType = strings.TrimSpace(s.ServiceType)
	s.Name = strings.TrimSpace(s.Name)

	for i := range s.Require {
		s.Require[i] = strings.TrimSpace(s.Require[i])
	}
	for i := range s.Fields {
		s.Fields[i].Key = strings.TrimSpace(s.Fields[i].Key)
		s.Fields[i].Path = strings.TrimSpace(s.Fields[i].Path)
	}
	for i := range s.Echo {
		s.Echo[i].Key = strings.TrimSpace(s.Echo[i].Key)
		s.Echo[i].Path = strings.TrimSpace(s.Echo[i].Path)
	}

	if s.SuccessStatus == 0 {
		s.SuccessStatus = http.StatusOK
	}

	return s
}

func validateSpec(s Spec) error {
	if s.ServiceType == "" {
		return errors.New("service_type is required")
	}
	if s.Name == "" {
		return fmt.Errorf("name is required for endpoint %q", s.ServiceType)
	}
	if s.SuccessStatus != http.StatusOK && s.SuccessStatus != http.StatusCreated {
		return fmt.Errorf("success_status must be 200 or 201 for endpoint %q", s.ServiceType)
	}
	for i, p := range s.Require {
		if p == "" {
			return fmt.Errorf("require[%d] is empty for endpoint %q", i, s.ServiceType)
		}
	}
	for i, f := range s.Fields {
		if f.Key == "" || f.Path == "" {
			return fmt.Errorf("fields[%d] needs key and path for endpoint %q", i, s.ServiceType)
		}
	}
	for i, f := range s.Echo {
		if f.Key == "" || f.Path == "" {
			return fmt.Errorf("echo[%d] needs key and path for endpoint %q", i, s.ServiceType)
		}
	}
	return nil
}
