package domain

// Participant is an actor who can execute facts; uniquely identified by email.
type Participant struct {
	ID       string
	FullName string
	Email    string
	Version  int64
}

// Summary returns the executor view of the participant.
func (p Participant) Summary() ParticipantSummary {
	return ParticipantSummary{
		ID:       p.ID,
		FullName: p.FullName,
		Email:    p.Email,
	}
}

// WithPatch returns a copy of the participant with every non-nil patch field applied.
func (p Participant) WithPatch(patch ParticipantPatch) Participant {
	if patch.FullName != nil {
		p.FullName = *patch.FullName
	}
	if patch.Email != nil {
		p.Email = *patch.Email
	}
	return p
}

// ParticipantCandidate is the registration payload.
type ParticipantCandidate struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// ParticipantPatch is a partial participant update.
type ParticipantPatch struct {
	FullName *string `json:"fullName,omitempty"`
	Email    *string `json:"email,omitempty"`
	Version  *int64  `json:"version,omitempty"`
}
