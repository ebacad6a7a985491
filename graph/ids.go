package graph

import (
	"fmt"
	"strings"
)

// Node id prefixes per type. A node id is always prefix + "_" + sanitized
// source key, so the same source record derives the same id on every build.
var nodeIDPrefixes = map[NodeType]string{
	NodeDatabase:     "db",
	NodePublication:  "pub",
	NodeResearchArea: "area",
	NodeOrganism:     "org",
	NodeAuthor:       "author",
	NodeKeyword:      "kw",
	NodeStudy:        "study",
	NodeFile:         "file",
}

// NodeID derives the deterministic id for a node of the given type from its
// source key. Example: NodeID(NodePublication, "GLDS-120") == "pub_glds-120".
func NodeID(t NodeType, key string) string {
	prefix, ok := nodeIDPrefixes[t]
	if !ok {
		prefix = "node"
	}
	return prefix + "_" + sanitizeKey(key)
}

// EdgeID derives an edge id from its endpoints and relation.
func EdgeID(source, target string, edgeType EdgeType) string {
	return fmt.Sprintf("%s_%s_%s", source, edgeType, target)
}

// sanitizeKey creates a safe, lowercase id fragment. It replaces special
// characters with underscores, ensuring ids are valid for use in D3.js and
// other graph libraries. Example: "Arabidopsis thaliana" becomes
// "arabidopsis_thaliana".
func sanitizeKey(key string) string {
	sanitized := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			return r
		}
		return '_'
	}, strings.TrimSpace(key))

	return strings.ToLower(sanitized)
}

// truncateLabel bounds display labels for the visualization frontend.
func truncateLabel(label string, max int) string {
	label = strings.TrimSpace(label)
	if len(label) <= max {
		return label
	}
	return label[:max-3] + "..."
}
