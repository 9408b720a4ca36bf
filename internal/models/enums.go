package models

// Closed enum types for every lifecycle field. Transitions are decided by the
// methods below, never by string comparison at call sites.

type CustomerType string

const (
	CustomerIndividual CustomerType = "INDIVIDUAL"
	CustomerCompany    CustomerType = "COMPANY"
)

func (t CustomerType) Valid() bool {
	return t == CustomerIndividual || t == CustomerCompany
}

type LeadSource string

const (
	SourceWeb      LeadSource = "WEB"
	SourceIG       LeadSource = "IG"
	SourceWhatsApp LeadSource = "WHATSAPP"
	SourceReferral LeadSource = "REFERRAL"
	SourceOther    LeadSource = "OTHER"
)

func (s LeadSource) Valid() bool {
	switch s {
	case SourceWeb, SourceIG, SourceWhatsApp, SourceReferral, SourceOther:
		return true
	}
	return false
}

type LeadStatus string

const (
	LeadNew          LeadStatus = "NEW"
	LeadQualified    LeadStatus = "QUALIFIED"
	LeadDisqualified LeadStatus = "DISQUALIFIED"
	LeadConverted    LeadStatus = "CONVERTED"
)

func (s LeadStatus) Valid() bool {
	switch s {
	case LeadNew, LeadQualified, LeadDisqualified, LeadConverted:
		return true
	}
	return false
}

type OpportunityStage string

const (
	StageNew            OpportunityStage = "NEW"
	StageContacted      OpportunityStage = "CONTACTED"
	StageVisitScheduled OpportunityStage = "VISIT_SCHEDULED"
	StageQuoteSent      OpportunityStage = "QUOTE_SENT"
	StageNegotiation    OpportunityStage = "NEGOTIATION"
	StageWon            OpportunityStage = "WON"
	StageLost           OpportunityStage = "LOST"
)

// AllStages lists every stage in pipeline order. Dashboard grouping iterates it.
var AllStages = []OpportunityStage{
	StageNew, StageContacted, StageVisitScheduled, StageQuoteSent,
	StageNegotiation, StageWon, StageLost,
}

func (s OpportunityStage) Valid() bool {
	for _, st := range AllStages {
		if s == st {
			return true
		}
	}
	return false
}

// Terminal reports whether the stage is permanent history (WON or LOST).
func (s OpportunityStage) Terminal() bool {
	return s == StageWon || s == StageLost
}

// CanTransition reports whether a move from s to target is allowed. Any
// non-terminal stage may move to any other stage (deals get lost from
// anywhere); terminal stages accept nothing.
func (s OpportunityStage) CanTransition(target OpportunityStage) bool {
	return !s.Terminal() && target.Valid()
}

type QuoteStatus string

const (
	QuoteDraft    QuoteStatus = "DRAFT"
	QuoteSent     QuoteStatus = "SENT"
	QuoteAccepted QuoteStatus = "ACCEPTED"
	QuoteRejected QuoteStatus = "REJECTED"
)

func (s QuoteStatus) Valid() bool {
	switch s {
	case QuoteDraft, QuoteSent, QuoteAccepted, QuoteRejected:
		return true
	}
	return false
}

func (s QuoteStatus) Terminal() bool {
	return s == QuoteAccepted || s == QuoteRejected
}

// quoteTransitions is the strict forward order: DRAFT -> SENT -> {ACCEPTED, REJECTED}.
var quoteTransitions = map[QuoteStatus][]QuoteStatus{
	QuoteDraft: {QuoteSent},
	QuoteSent:  {QuoteAccepted, QuoteRejected},
}

func (s QuoteStatus) CanTransition(target QuoteStatus) bool {
	for _, t := range quoteTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

type QuoteItemType string

const (
	ItemProduct QuoteItemType = "PRODUCT"
	ItemService QuoteItemType = "SERVICE"
)

func (t QuoteItemType) Valid() bool {
	return t == ItemProduct || t == ItemService
}

type ProjectStatus string

const (
	ProjectPlanning    ProjectStatus = "PLANNING"
	ProjectInProgress  ProjectStatus = "IN_PROGRESS"
	ProjectDone        ProjectStatus = "DONE"
	ProjectMaintenance ProjectStatus = "MAINTENANCE"
)

// Project statuses have no enforced ordering; any valid status may follow any other.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectPlanning, ProjectInProgress, ProjectDone, ProjectMaintenance:
		return true
	}
	return false
}

type MediaType string

const (
	MediaBefore   MediaType = "BEFORE"
	MediaProgress MediaType = "PROGRESS"
	MediaAfter    MediaType = "AFTER"
)

func (t MediaType) Valid() bool {
	return t == MediaBefore || t == MediaProgress || t == MediaAfter
}

type ActivityType string

const (
	ActivityCall     ActivityType = "CALL"
	ActivityWhatsApp ActivityType = "WHATSAPP"
	ActivityEmail    ActivityType = "EMAIL"
	ActivityVisit    ActivityType = "VISIT"
	ActivityTask     ActivityType = "TASK"
)

func (t ActivityType) Valid() bool {
	switch t {
	case ActivityCall, ActivityWhatsApp, ActivityEmail, ActivityVisit, ActivityTask:
		return true
	}
	return false
}
