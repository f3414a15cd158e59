package scan

// Item is one discovered metadata document (a block, module, or transport
// adapter) under a repository's metadata subdirectory.
type Item struct {
	Name   string         // filename stem
	File   string         // full path to the source document
	Config map[string]any // parsed document contents
}

// Record is the merged, normalized description of one scanned repository,
// fully populated in a single scan pass and never mutated afterwards.
type Record struct {
	Name string
	Path string

	// Metadata layers the repository manifest over the catalog descriptor's
	// override fields; manifest values win on key collision. The merge is a
	// shallow top-level one: nested structures are replaced whole.
	Metadata map[string]any

	// Readme holds at most the first 100 lines of README.md, verbatim.
	Readme string
	// ReadmeTitle is the text of the readme's first heading, if any.
	ReadmeTitle string

	HasRFNoC          bool
	Blocks            []Item
	Modules           []Item
	TransportAdapters []Item

	// Err records a scan failure for this repository. A failed repository
	// still yields a record so the index can report it.
	Err error
}

// MetaString returns the metadata value for key when it is a plain string.
func (r *Record) MetaString(key string) string {
	if v, ok := r.Metadata[key].(string); ok {
		return v
	}
	return ""
}

// Title resolves the display title: merged metadata first, then the readme
// heading, then the repository name.
func (r *Record) Title() string {
	if t := r.MetaString("title"); t != "" {
		return t
	}
	if r.ReadmeTitle != "" {
		return r.ReadmeTitle
	}
	return r.Name
}
