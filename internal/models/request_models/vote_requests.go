package request_models

type SubmitVoteRequest struct {
	UserID       string   `json:"user_id" binding:"required"`
	ProjectID    string   `json:"project_id" binding:"required"`
	Satisfaction int      `json:"satisfaction" binding:"required"`
	Tags         []string `json:"tags"`
	Feedback     string   `json:"feedback"`
	// Now optionally overrides the submission instant (RFC3339), used by
	// operators to replay a missed month.
	Now string `json:"now"`
}

type CarryForwardRequest struct {
	UserID    string `json:"user_id" binding:"required"`
	ProjectID string `json:"project_id" binding:"required"`
	Now       string `json:"now"`
}
