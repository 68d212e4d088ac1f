package session

// Mode selects transcription fidelity. Immutable for the duration of one
// analysis request.
type Mode int

const (
	// CleanRead removes fillers and stutters while preserving meaning.
	CleanRead Mode = iota
	// Verbatim captures every stutter and filler.
	Verbatim
)

// String returns the display name shown in the header mode switch.
func (m Mode) String() string {
	if m == Verbatim {
		return "Verbatim"
	}
	return "Clean Read"
}

// PromptLabel returns the instruction fragment embedded in the analysis prompt.
func (m Mode) PromptLabel() string {
	if m == Verbatim {
		return "Full Verbatim (include fillers)"
	}
	return "Clean Read (remove stutters, preserve meaning)"
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == Verbatim {
		return CleanRead
	}
	return Verbatim
}
