// Package company loads the directory's company records from a JSON file.
//
// The file is re-read on every call so edits made by data entry show up on
// the next request without a restart. The list is small enough that parsing
// cost is irrelevant next to the outbound HTTP the rest of a request does.
package company

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"huangye/pkg/model"
)

// Store reads company records from disk.
type Store struct {
	path string
}

// NewStore creates a store reading from path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// All returns every usable company record in file order.
// Records without a slug cannot be linked to and are skipped.
func (s *Store) All() ([]model.Company, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read companies file: %w", err)
	}

	var raw []model.Company
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse companies file: %w", err)
	}

	companies := raw[:0]
	for _, c := range raw {
		if c.Slug == "" {
			slog.Warn("skipping company without slug", "name", c.Name)
			continue
		}
		companies = append(companies, c)
	}

	return companies, nil
}

// BySlug returns the company with the given slug, or nil if unknown.
func (s *Store) BySlug(slug string) (*model.Company, error) {
	companies, err := s.All()
	if err != nil {
		return nil, err
	}
	for i := range companies {
		if companies[i].Slug == slug {
			return &companies[i], nil
		}
	}
	return nil, nil
}

// PlaceRefs returns the distinct place IDs referenced by the company list,
// in first-seen order, each paired with the "name city" text query for the
// record that introduced it.
func (s *Store) PlaceRefs() ([]model.PlaceRef, error) {
	companies, err := s.All()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var refs []model.PlaceRef
	for _, c := range companies {
		if c.PlaceID == "" || seen[c.PlaceID] {
			continue
		}
		seen[c.PlaceID] = true
		refs = append(refs, model.PlaceRef{
			PlaceID: c.PlaceID,
			Query:   strings.TrimSpace(c.Name + " " + c.City),
		})
	}
	return refs, nil
}
