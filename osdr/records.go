// Package osdr models the upstream NASA OSDR metadata that the graph engine
// consumes: publication records from the metadata search service and file
// listings from the study file service. The package decodes their JSON
// payloads, tolerating the shape drift the upstream pipeline produces, and
// provides local and HTTP-backed sources for them.
package osdr

import (
	"encoding/json"
	"io"

	"github.com/astraldata/biograph/errors"
)

// Publication is one publication record from the upstream metadata service.
type Publication struct {
	OSDRID          string   `json:"osdr_id"`
	Title           string   `json:"title"`
	ResearchArea    string   `json:"research_area"`
	Organisms       []string `json:"organisms"`
	Authors         []string `json:"authors"`
	Keywords        []string `json:"keywords"`
	PublicationDate string   `json:"publication_date"`
	Abstract        string   `json:"abstract"`
}

// FileRecord is one file entry from the upstream OSDR listing service.
type FileRecord struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Type           string `json:"type"`
	StudyID        string `json:"study_id"`
	Species        string `json:"species"`
	Mission        string `json:"mission"`
	Date           string `json:"date"`
	Size           int64  `json:"size"`
	URL            string `json:"url"`
	ExperimentType string `json:"experiment_type"`
	Description    string `json:"description"`
}

// UnmarshalJSON tolerates the organism shape drift the upstream pipeline
// produces: organisms arrive as plain strings, as objects carrying a
// scientificName, or only nested under a metadata block.
func (p *Publication) UnmarshalJSON(data []byte) error {
	type alias struct {
		OSDRID          string          `json:"osdr_id"`
		Title           string          `json:"title"`
		ResearchArea    string          `json:"research_area"`
		Organisms       json.RawMessage `json:"organisms"`
		Authors         []string        `json:"authors"`
		Keywords        []string        `json:"keywords"`
		PublicationDate string          `json:"publication_date"`
		Abstract        string          `json:"abstract"`
		Metadata        map[string]any  `json:"metadata"`
	}

	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}

	p.OSDRID = a.OSDRID
	p.Title = a.Title
	p.ResearchArea = a.ResearchArea
	p.Authors = a.Authors
	p.Keywords = a.Keywords
	p.PublicationDate = a.PublicationDate
	p.Abstract = a.Abstract
	p.Organisms = decodeOrganisms(a.Organisms)

	if len(p.Organisms) == 0 && a.Metadata != nil {
		p.Organisms = organismsFromMetadata(a.Metadata)
	}

	return nil
}

// decodeOrganisms accepts ["Mus musculus"] as well as
// [{"scientificName": "Mus musculus"}].
func decodeOrganisms(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var plain []string
	if err := json.Unmarshal(raw, &plain); err == nil {
		return plain
	}

	var objects []struct {
		ScientificName string `json:"scientificName"`
	}
	if err := json.Unmarshal(raw, &objects); err == nil {
		names := make([]string, 0, len(objects))
		for _, o := range objects {
			if o.ScientificName != "" {
				names = append(names, o.ScientificName)
			}
		}
		return names
	}

	return nil
}

// organismsFromMetadata digs organism names out of the nested metadata block
// some upstream payloads carry instead of a top-level organisms list.
func organismsFromMetadata(metadata map[string]any) []string {
	var names []string
	for _, field := range []string{"organism", "organisms", "species", "scientificName"} {
		switch v := metadata[field].(type) {
		case string:
			if v != "" {
				names = append(names, v)
			}
		case []any:
			for _, item := range v {
				switch o := item.(type) {
				case string:
					names = append(names, o)
				case map[string]any:
					if name, ok := o["scientificName"].(string); ok && name != "" {
						names = append(names, name)
					}
				}
			}
		case map[string]any:
			if name, ok := v["scientificName"].(string); ok && name != "" {
				names = append(names, name)
			}
		}
		if len(names) > 0 {
			break
		}
	}
	return names
}

// DecodePublications reads a publication payload that is either a bare JSON
// array or wrapped as {"publications": [...]}.
func DecodePublications(r io.Reader) ([]Publication, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read publication payload")
	}

	var plain []Publication
	if err := json.Unmarshal(data, &plain); err == nil {
		return plain, nil
	}

	var wrapped struct {
		Publications []Publication `json:"publications"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, errors.Wrap(err, "failed to decode publication payload")
	}
	return wrapped.Publications, nil
}

// DecodeFiles reads a file listing payload that is either a bare JSON array
// or wrapped as {"files": [...]} or {"results": [...]}.
func DecodeFiles(r io.Reader) ([]FileRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read file payload")
	}

	var plain []FileRecord
	if err := json.Unmarshal(data, &plain); err == nil {
		return plain, nil
	}

	var wrapped struct {
		Files   []FileRecord `json:"files"`
		Results []FileRecord `json:"results"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, errors.Wrap(err, "failed to decode file payload")
	}
	if len(wrapped.Files) > 0 {
		return wrapped.Files, nil
	}
	return wrapped.Results, nil
}
