package graph

const (
	// Structural edge weight (contains, belongs_to, studies, authored, references)
	structuralEdgeWeight = 1.0
	// Tag edge weight, kept below structural edges so force layouts pull
	// keyword satellites in less strongly
	tagEdgeWeight = 0.8

	// Display label bound for the visualization frontend
	maxLabelLength = 80

	// Root node identity
	rootKey         = "osdr"
	rootLabel       = "NASA Space Biology"
	rootDescription = "NASA Open Science Data Repository publications and study files"
)
