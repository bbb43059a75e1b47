package request

// CreateUserRequest is the request body for registering a username
type CreateUserRequest struct {
	Username string `json:"username"`
}

// SubmitGuessRequest is the request body for submitting a guess
type SubmitGuessRequest struct {
	Username    string `json:"username"`
	Text        string `json:"text"`
	RevealIndex int    `json:"reveal_index"`
}

// HintRequest is the request body for buying a hint
type HintRequest struct {
	Username string `json:"username"`
	Kind     string `json:"kind"`
}

// FinalizeStreakRequest is the request body for finalizing a streak
type FinalizeStreakRequest struct {
	Username string `json:"username"`
}

// CheatCheckRequest is the request body for re-running the anomaly
// detector over a session
type CheatCheckRequest struct {
	Username string `json:"username"`
}
