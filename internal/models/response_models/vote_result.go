package response_models

// VoteResult is the payload returned after a vote (fresh or carried
// forward) has been recorded and scored.
type VoteResult struct {
	Satisfaction int      `json:"satisfaction"`
	Tags         []string `json:"tags"`
	Feedback     string   `json:"feedback,omitempty"`
	PointsEarned int      `json:"points_earned"`
	Streak       int      `json:"streak"`
}

// VoteContent is the rated content of an existing vote, without scoring.
type VoteContent struct {
	Satisfaction int      `json:"satisfaction"`
	Tags         []string `json:"tags"`
	Feedback     string   `json:"feedback,omitempty"`
}

// VoteStatus answers the form-opening precheck: has this user already
// voted this month, and is there last-month content to carry forward.
type VoteStatus struct {
	VotedThisMonth  bool         `json:"voted_this_month"`
	CanCarryForward bool         `json:"can_carry_forward"`
	LastMonth       *VoteContent `json:"last_month,omitempty"`
}
