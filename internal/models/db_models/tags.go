package db_models

// Topic tags form a closed vocabulary; a submission may carry any subset.
const (
	TagWorkload          = "workload"
	TagTeamwork          = "teamwork"
	TagProjectNature     = "project_nature"
	TagClientCooperation = "client_cooperation"
	TagTeamCommunication = "team_communication"
	TagGrowthOpportunity = "growth_opportunity"
	TagInnovationSpace   = "innovation_space"
)

var knownTags = map[string]struct{}{
	TagWorkload:          {},
	TagTeamwork:          {},
	TagProjectNature:     {},
	TagClientCooperation: {},
	TagTeamCommunication: {},
	TagGrowthOpportunity: {},
	TagInnovationSpace:   {},
}

func KnownTag(tag string) bool {
	_, ok := knownTags[tag]
	return ok
}
