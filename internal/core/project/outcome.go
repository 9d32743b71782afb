package project

// Outcome describes what a configuration step did to a single file.
type Outcome int

const (
	// OutcomeApplied means the file was written.
	OutcomeApplied Outcome = iota
	// OutcomeSkippedFileAbsent means the target file did not exist, so nothing was written.
	OutcomeSkippedFileAbsent
	// OutcomeSkippedMarkerAbsent means the insertion marker was not found, so the file was left unchanged.
	OutcomeSkippedMarkerAbsent
)

// String implements fmt.Stringer.
func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeSkippedFileAbsent:
		return "skipped: file absent"
	case OutcomeSkippedMarkerAbsent:
		return "skipped: marker absent"
	default:
		return "unknown"
	}
}

// Skipped reports whether the step left the file untouched.
func (o Outcome) Skipped() bool {
	return o != OutcomeApplied
}

// FileChange records the outcome for one file.
type FileChange struct {
	Path    string  // Path of the file, as passed to the filesystem.
	Outcome Outcome // What happened to it.
}

// ConfigureResult summarizes a Configure call.
type ConfigureResult struct {
	Selection Selection
	Changes   []FileChange
}

// Applied returns the paths of files that were written.
func (r *ConfigureResult) Applied() []string {
	var out []string
	for _, c := range r.Changes {
		if c.Outcome == OutcomeApplied {
			out = append(out, c.Path)
		}
	}
	return out
}

// Skipped returns the changes that left their file untouched.
func (r *ConfigureResult) Skipped() []FileChange {
	var out []FileChange
	for _, c := range r.Changes {
		if c.Outcome.Skipped() {
			out = append(out, c)
		}
	}
	return out
}
