// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discovery

import "github.com/zagdt/e-library-backend-sub001/pkg/types"

// sourceCatalog holds static display metadata per source identifier. It is
// read-only process-wide state; no query-time behavior depends on it.
var sourceCatalog = map[string]types.SourceInfo{
	SourceOpenAlex: {
		ID:          SourceOpenAlex,
		Name:        "OpenAlex",
		Description: "Open index of scholarly works, authors, and institutions",
		Free:        true,
	},
	SourceDOAJ: {
		ID:          SourceDOAJ,
		Name:        "Directory of Open Access Journals",
		Description: "Peer-reviewed open access journals and articles",
		Free:        true,
	},
	SourceArxiv: {
		ID:          SourceArxiv,
		Name:        "arXiv",
		Description: "Preprints in physics, mathematics, and computer science",
		Free:        true,
	},
	SourceSemanticScholar: {
		ID:          SourceSemanticScholar,
		Name:        "Semantic Scholar",
		Description: "AI-powered academic search across all fields of science",
		Free:        true,
	},
	SourceCrossref: {
		ID:          SourceCrossref,
		Name:        "Crossref",
		Description: "DOI registration agency metadata for scholarly publications",
		Free:        true,
	},
	SourceCORE: {
		ID:          SourceCORE,
		Name:        "CORE",
		Description: "Aggregated open access research papers from repositories worldwide",
		Free:        false,
	},
	SourcePubMed: {
		ID:          SourcePubMed,
		Name:        "PubMed",
		Description: "Biomedical and life sciences literature from NCBI",
		Free:        true,
	},
}

// sourceInfo returns catalog metadata for a source identifier, or a minimal
// entry for sources without a catalog record.
func sourceInfo(id string) types.SourceInfo {
	if info, ok := sourceCatalog[id]; ok {
		return info
	}
	return types.SourceInfo{ID: id, Name: id}
}
