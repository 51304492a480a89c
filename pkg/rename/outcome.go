package rename

// Outcome is the terminal state of one note-created event.
type Outcome int

const (
	// OutcomeInserted means the title was written into the note.
	OutcomeInserted Outcome = iota
	// OutcomeSkippedNonEmpty means the note already had content after its
	// frontmatter; nothing was touched.
	OutcomeSkippedNonEmpty
	// OutcomeSkippedExcluded means the scope rules excluded the note.
	OutcomeSkippedExcluded
	// OutcomeFailed means a storage or editor error was caught at the
	// coordinator boundary.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInserted:
		return "inserted"
	case OutcomeSkippedNonEmpty:
		return "skipped: note not empty"
	case OutcomeSkippedExcluded:
		return "skipped: out of scope"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}
