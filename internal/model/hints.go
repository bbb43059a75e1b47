package model

// HintKind names a purchasable hint. Values are part of the external
// contract (they key the cost table and the persisted usage rows).
type HintKind string

const (
	HintTeam       HintKind = "team"
	HintDivision   HintKind = "division"
	HintConference HintKind = "conference"
	HintRecord     HintKind = "record"
	HintCollege    HintKind = "college"
	HintFirstName  HintKind = "first_name"
	HintLastName   HintKind = "last_name"
)

// HintKinds lists every known hint kind
var HintKinds = []HintKind{
	HintTeam,
	HintDivision,
	HintConference,
	HintRecord,
	HintCollege,
	HintFirstName,
	HintLastName,
}

// HintValue is one resolved hint for a session's current reveal
type HintValue struct {
	Kind  HintKind `json:"kind"`
	Value string   `json:"value"`
	Cost  int      `json:"cost"`
}
