// Package domain provides core business rules for the conversational intake
// bounded context: sessions, field validation, eligibility, and media rules.
package domain

// Flow identifies a top-level conversation branch.
type Flow string

const (
	// FlowNone means the sender is at the top-level menu.
	FlowNone Flow = ""
	// FlowQualification is the multi-step loan qualification dialogue.
	FlowQualification Flow = "lead_qualification"
	// FlowRequirements is the single-step requirements info branch.
	FlowRequirements Flow = "requirements_info"
	// FlowAdvisor is the single-step human-advisor request branch.
	FlowAdvisor Flow = "advisor_request"
)

// Step identifies the position within the active flow.
type Step string

const (
	StepMenu           Step = "menu"
	StepCollateralKind Step = "collateral_kind"
	StepCollateralYear Step = "collateral_year"
	StepAmount         Step = "requested_amount"
	StepConsent        Step = "collateral_custody_consent"
	StepFullName       Step = "full_name"
	StepLocation       Step = "location"
	StepAwaitingPhotos Step = "awaiting_photos"

	// StepRequirementsFollowUp waits for the yes/no after the info text.
	StepRequirementsFollowUp Step = "requirements_follow_up"
	// StepAdvisorName waits for the caller's name before the handoff.
	StepAdvisorName Step = "advisor_name"
)

// Field keys used in Session.Fields. Values are stored canonicalized.
const (
	FieldKind     = "collateral_kind"
	FieldYear     = "collateral_year"
	FieldAmount   = "requested_amount"
	FieldConsent  = "custody_consent"
	FieldName     = "full_name"
	FieldLocation = "location"
)

// Session is the volatile working memory for one sender's conversation.
// It lives only in the process; the durable record of a lead is the
// responsibility of the lead store.
type Session struct {
	Identity string
	Flow     Flow
	Step     Step
	Fields   map[string]string
	Photos   []string

	// LeadOpen records that this attempt's durable row exists, so a
	// re-completed flow after a correction updates it instead of
	// appending a second open record.
	LeadOpen bool
}

// NewSession creates a fresh session at the top-level menu.
func NewSession(identity string) *Session {
	return &Session{
		Identity: identity,
		Flow:     FlowNone,
		Step:     StepMenu,
		Fields:   make(map[string]string),
	}
}

// Reset returns the session to the top-level menu, discarding all captured
// fields and photos.
func (s *Session) Reset() {
	s.Flow = FlowNone
	s.Step = StepMenu
	s.Fields = make(map[string]string)
	s.Photos = nil
	s.LeadOpen = false
}

// Attachment is one media reference delivered with an inbound message.
type Attachment struct {
	URL         string
	ContentType string
}

// Inbound is a normalized inbound message event.
type Inbound struct {
	Identity    string
	Text        string
	Attachments []Attachment
}

// Reply is one outbound message produced for an inbound event.
type Reply struct {
	Text     string
	MediaURL string
}
