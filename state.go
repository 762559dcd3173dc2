package leadgen

// Params are the job inputs. They are immutable once the pipeline starts.
type Params struct {
	TargetCustomers  string `json:"target_customers"`
	OutreachChannels string `json:"outreach_channels"`
	BusinessType     string `json:"business_type,omitempty"`
	Location         string `json:"location,omitempty"`
	JobID            string `json:"job_id,omitempty"`
}

// BusinessTypeOrDefault returns the business type, defaulting to "Business".
func (p Params) BusinessTypeOrDefault() string {
	if p.BusinessType == "" {
		return "Business"
	}
	return p.BusinessType
}

// LocationOrDefault returns the location, defaulting to a neutral placeholder.
func (p Params) LocationOrDefault() string {
	if p.Location == "" {
		return "unspecified location"
	}
	return p.Location
}

// TargetDescription is the human-readable job description used in status
// updates and stored job records.
func (p Params) TargetDescription() string {
	return p.BusinessTypeOrDefault() + " in " + p.LocationOrDefault()
}

// Briefing is a per-category synthesis of enriched documents.
type Briefing struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// State is the single mutable object threaded through all pipeline stages.
// Each stage reads the fields produced by earlier stages and writes its own;
// prior stage outputs are never removed. Stages run one at a time, so no
// locking is required.
type State struct {
	Params

	// Documents is the shared document store built by the research stage,
	// keyed by URL. It only grows; a URL collision overwrites.
	Documents map[string]Document `json:"documents"`

	// OrganizedDocs is the collector's partition of Documents by category.
	OrganizedDocs map[Category]map[string]Document `json:"organized_docs,omitempty"`

	// CuratedDocs holds each category's top documents after the relevance gate.
	CuratedDocs map[Category]map[string]Document `json:"curated_docs,omitempty"`

	// EnrichedDocs holds curated documents augmented with extracted details.
	EnrichedDocs map[Category]map[string]Document `json:"enriched_docs,omitempty"`

	// Briefings holds the per-category summaries keyed by category.
	Briefings map[Category]Briefing `json:"briefings,omitempty"`

	// Report is the final compiled text, empty if generation failed.
	Report string `json:"report,omitempty"`

	// Err describes a terminal error, if any.
	Err string `json:"error,omitempty"`
}

// NewState creates the initial state for a job with an empty document store.
func NewState(p Params) *State {
	return &State{
		Params:    p,
		Documents: make(map[string]Document),
	}
}

// MergeDocs merges documents into the shared store. Later writes to the same
// URL overwrite.
func (s *State) MergeDocs(docs map[string]Document) {
	if s.Documents == nil {
		s.Documents = make(map[string]Document, len(docs))
	}
	for url, doc := range docs {
		s.Documents[url] = doc
	}
}

// DocsByCategory partitions the document store by producing analyst,
// defaulting to the unknown bucket when the category is absent.
func (s *State) DocsByCategory() map[Category]map[string]Document {
	byCategory := make(map[Category]map[string]Document)
	for url, doc := range s.Documents {
		cat := doc.AnalystType
		if cat == "" {
			cat = CategoryUnknown
		}
		if byCategory[cat] == nil {
			byCategory[cat] = make(map[string]Document)
		}
		byCategory[cat][url] = doc
	}
	return byCategory
}

// Snapshot returns a copy of the state safe to hand to a consumer while the
// next stage keeps mutating the original. Nested maps are copied; documents
// are value types.
func (s *State) Snapshot() *State {
	clone := *s
	clone.Documents = copyDocMap(s.Documents)
	clone.OrganizedDocs = copyCategoryMap(s.OrganizedDocs)
	clone.CuratedDocs = copyCategoryMap(s.CuratedDocs)
	clone.EnrichedDocs = copyCategoryMap(s.EnrichedDocs)
	if s.Briefings != nil {
		clone.Briefings = make(map[Category]Briefing, len(s.Briefings))
		for cat, b := range s.Briefings {
			clone.Briefings[cat] = b
		}
	}
	return &clone
}

func copyDocMap(src map[string]Document) map[string]Document {
	if src == nil {
		return nil
	}
	dst := make(map[string]Document, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func copyCategoryMap(src map[Category]map[string]Document) map[Category]map[string]Document {
	if src == nil {
		return nil
	}
	dst := make(map[Category]map[string]Document, len(src))
	for cat, docs := range src {
		dst[cat] = copyDocMap(docs)
	}
	return dst
}
