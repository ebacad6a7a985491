package graph

import (
	"go.uber.org/zap"

	"github.com/astraldata/biograph/osdr"
)

// Builder derives a typed knowledge graph from publication and file records.
// Each Builder is local to one build call: create, Build, discard. Builds
// are pure and deterministic given the same input ordering, so concurrent
// builds on separate Builders need no locking.
type Builder struct {
	graph  *Graph
	logger *zap.SugaredLogger

	// normalizeArea coalesces research-area synonyms before node derivation.
	// Nil means areas are used verbatim.
	normalizeArea func(string) string
}

// NewBuilder creates a builder for a single graph construction.
func NewBuilder(logger *zap.SugaredLogger) *Builder {
	return &Builder{
		graph:  New(),
		logger: logger.Named("graph.builder"),
	}
}

// WithAreaNormalizer installs a research-area synonym normalizer, applied to
// every publication's research_area before node derivation.
func (b *Builder) WithAreaNormalizer(normalize func(string) string) *Builder {
	b.normalizeArea = normalize
	return b
}

// Build constructs the full graph: one root database node, publication
// subgraph, study/file subgraph, and references edges bridging the two where
// a publication's osdr_id matches a study_id. Records missing required
// fields are skipped; duplicate entities coalesce into a single node.
// Empty input produces a root-only graph, never an error.
func (b *Builder) Build(publications []osdr.Publication, files []osdr.FileRecord) *Graph {
	root := b.addRoot()

	skipped := 0
	for _, pub := range publications {
		if pub.OSDRID == "" || pub.Title == "" {
			skipped++
			continue
		}
		b.addPublication(root.ID, pub)
	}

	b.addStudies(root.ID, files)
	b.bridgePublicationsToStudies(publications)

	if skipped > 0 {
		b.logger.Debugw("Skipped malformed publication records", "count", skipped)
	}
	b.logger.Debugw("Graph built",
		"nodes", len(b.graph.Nodes),
		"edges", len(b.graph.Edges),
	)

	return b.graph
}

func (b *Builder) addRoot() *Node {
	return b.graph.AddNode(&Node{
		ID:    NodeID(NodeDatabase, rootKey),
		Type:  NodeDatabase,
		Label: rootLabel,
		Level: LevelRoot,
		Properties: DatabaseProps{
			Name:        rootLabel,
			Description: rootDescription,
		},
	})
}

// addPublication derives the publication node and its satellite entities:
// research area, organisms, authors, keywords. Entity nodes are inserted
// before any edge referencing them.
func (b *Builder) addPublication(rootID string, pub osdr.Publication) {
	pubID := NodeID(NodePublication, pub.OSDRID)
	if b.graph.HasNode(pubID) {
		// Duplicate record: coalesce into the first occurrence
		return
	}

	pubNode := b.graph.AddNode(&Node{
		ID:    pubID,
		Type:  NodePublication,
		Label: truncateLabel(pub.Title, maxLabelLength),
		Level: LevelPrimary,
		Properties: PublicationProps{
			OSDRID:          pub.OSDRID,
			Title:           pub.Title,
			ResearchArea:    b.areaName(pub.ResearchArea),
			Organisms:       pub.Organisms,
			Authors:         pub.Authors,
			Keywords:        pub.Keywords,
			PublicationDate: pub.PublicationDate,
			Abstract:        truncateLabel(pub.Abstract, 500),
		},
	})
	b.graph.AddEdge(rootID, pubNode.ID, EdgeContains, structuralEdgeWeight)

	if area := b.areaName(pub.ResearchArea); area != "" {
		areaNode := b.graph.AddNode(&Node{
			ID:         NodeID(NodeResearchArea, area),
			Type:       NodeResearchArea,
			Label:      truncateLabel(area, maxLabelLength),
			Level:      LevelPrimary,
			Properties: ResearchAreaProps{Name: area},
		})
		if !b.graph.HasEdge(rootID, areaNode.ID, EdgeContains) {
			b.graph.AddEdge(rootID, areaNode.ID, EdgeContains, structuralEdgeWeight)
		}
		b.graph.AddEdge(pubNode.ID, areaNode.ID, EdgeBelongsTo, structuralEdgeWeight)
	}

	for _, organism := range pub.Organisms {
		if organism == "" {
			continue
		}
		orgNode := b.graph.AddNode(&Node{
			ID:         NodeID(NodeOrganism, organism),
			Type:       NodeOrganism,
			Label:      truncateLabel(organism, maxLabelLength),
			Level:      LevelLeaf,
			Properties: OrganismProps{Name: organism},
		})
		b.graph.AddEdge(pubNode.ID, orgNode.ID, EdgeStudies, structuralEdgeWeight)
	}

	for _, author := range pub.Authors {
		if author == "" {
			continue
		}
		authorNode := b.graph.AddNode(&Node{
			ID:         NodeID(NodeAuthor, author),
			Type:       NodeAuthor,
			Label:      truncateLabel(author, maxLabelLength),
			Level:      LevelLeaf,
			Properties: AuthorProps{Name: author},
		})
		// Directed author -> publication to denote provenance
		b.graph.AddEdge(authorNode.ID, pubNode.ID, EdgeAuthored, structuralEdgeWeight)
	}

	for _, keyword := range pub.Keywords {
		if keyword == "" {
			continue
		}
		kwNode := b.graph.AddNode(&Node{
			ID:         NodeID(NodeKeyword, keyword),
			Type:       NodeKeyword,
			Label:      truncateLabel(keyword, maxLabelLength),
			Level:      LevelLeaf,
			Properties: KeywordProps{Term: keyword},
		})
		b.graph.AddEdge(pubNode.ID, kwNode.ID, EdgeTaggedWith, tagEdgeWeight)
	}
}

// addStudies groups file records by study_id, creating one study node per
// group (species and mission come from the first record seen, file_count
// from the group size) and one file node per record.
func (b *Builder) addStudies(rootID string, files []osdr.FileRecord) {
	groups := make(map[string][]osdr.FileRecord)
	order := make([]string, 0)
	skipped := 0

	for _, f := range files {
		if f.ID == "" || f.StudyID == "" {
			skipped++
			continue
		}
		if _, seen := groups[f.StudyID]; !seen {
			order = append(order, f.StudyID)
		}
		groups[f.StudyID] = append(groups[f.StudyID], f)
	}

	for _, studyID := range order {
		group := groups[studyID]
		first := group[0]

		studyNode := b.graph.AddNode(&Node{
			ID:    NodeID(NodeStudy, studyID),
			Type:  NodeStudy,
			Label: truncateLabel(studyID, maxLabelLength),
			Level: LevelPrimary,
			Properties: StudyProps{
				StudyID:   studyID,
				FileCount: len(group),
				Species:   first.Species,
				Mission:   first.Mission,
			},
		})
		b.graph.AddEdge(rootID, studyNode.ID, EdgeContains, structuralEdgeWeight)

		for _, f := range group {
			fileID := NodeID(NodeFile, f.ID)
			if b.graph.HasNode(fileID) {
				continue
			}
			fileNode := b.graph.AddNode(&Node{
				ID:    fileID,
				Type:  NodeFile,
				Label: truncateLabel(f.Name, maxLabelLength),
				Level: LevelLeaf,
				Properties: FileProps{
					FileID:         f.ID,
					Name:           f.Name,
					FileType:       f.Type,
					StudyID:        f.StudyID,
					URL:            f.URL,
					ExperimentType: f.ExperimentType,
					Description:    truncateLabel(f.Description, 200),
				},
			})
			b.graph.AddEdge(studyNode.ID, fileNode.ID, EdgeContains, structuralEdgeWeight)
		}
	}

	if skipped > 0 {
		b.logger.Debugw("Skipped malformed file records", "count", skipped)
	}
}

// bridgePublicationsToStudies adds references edges where a publication's
// osdr_id matches an existing study_id, connecting the two otherwise
// disjoint subgraphs.
func (b *Builder) bridgePublicationsToStudies(publications []osdr.Publication) {
	for _, pub := range publications {
		if pub.OSDRID == "" {
			continue
		}
		pubID := NodeID(NodePublication, pub.OSDRID)
		studyID := NodeID(NodeStudy, pub.OSDRID)
		if b.graph.HasNode(pubID) && b.graph.HasNode(studyID) &&
			!b.graph.HasEdge(pubID, studyID, EdgeReferences) {
			b.graph.AddEdge(pubID, studyID, EdgeReferences, structuralEdgeWeight)
		}
	}
}

func (b *Builder) areaName(area string) string {
	if b.normalizeArea != nil {
		return b.normalizeArea(area)
	}
	return area
}
