package osdr

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/astraldata/biograph/errors"
)

// Vocabulary normalizes free-text research-area strings to canonical names
// so synonym areas coalesce into a single graph node. Lookups are
// case-insensitive; unknown areas pass through unchanged.
type Vocabulary struct {
	canonical map[string]string
}

// vocabularyFile is the YAML shape: canonical name -> list of synonyms.
type vocabularyFile struct {
	ResearchAreas map[string][]string `yaml:"research_areas"`
}

// DefaultVocabulary returns the built-in research-area synonym map observed
// in upstream OSDR metadata.
func DefaultVocabulary() *Vocabulary {
	return buildVocabulary(map[string][]string{
		"Plant Biology": {
			"plant science",
			"plant growth",
			"plants",
		},
		"Radiation Biology": {
			"radiation",
			"space radiation",
			"radiation effects",
		},
		"Space Biology": {
			"spaceflight biology",
			"space life science",
		},
		"Rodent Research": {
			"rodent",
			"mouse studies",
		},
		"Microbiology": {
			"microbes",
			"microbial research",
		},
		"Cell Biology": {
			"cellular biology",
			"cell science",
		},
	})
}

// LoadVocabulary reads a research-area synonym map from a YAML file.
func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read vocabulary file %s", path)
	}

	var file vocabularyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrapf(err, "failed to parse vocabulary file %s", path)
	}
	if len(file.ResearchAreas) == 0 {
		return nil, errors.Newf("vocabulary file %s defines no research_areas", path)
	}

	return buildVocabulary(file.ResearchAreas), nil
}

func buildVocabulary(areas map[string][]string) *Vocabulary {
	canonical := make(map[string]string)
	for name, synonyms := range areas {
		canonical[strings.ToLower(name)] = name
		for _, synonym := range synonyms {
			canonical[strings.ToLower(strings.TrimSpace(synonym))] = name
		}
	}
	return &Vocabulary{canonical: canonical}
}

// Normalize maps an area string to its canonical name. Unknown areas are
// returned trimmed but otherwise unchanged.
func (v *Vocabulary) Normalize(area string) string {
	area = strings.TrimSpace(area)
	if area == "" {
		return ""
	}
	if name, ok := v.canonical[strings.ToLower(area)]; ok {
		return name
	}
	return area
}

// NormalizePublications applies area normalization to a publication slice in
// place and returns it, so builders and linkers see consistent groups.
func (v *Vocabulary) NormalizePublications(publications []Publication) []Publication {
	for i := range publications {
		publications[i].ResearchArea = v.Normalize(publications[i].ResearchArea)
	}
	return publications
}
