// Package conversation implements the multi-step forms that collect a job
// offer or a candidate profile one answer at a time.
package conversation

// Kind identifies a form flow.
type Kind string

const (
	KindOffer     Kind = "offer"
	KindCandidate Kind = "candidate"
)

// State is a step of a flow. Each flow walks its states in declaration order
// and ends in StateDone.
type State int

const (
	StateNone State = iota

	StateAwaitTitle
	StateAwaitCompany
	StateAwaitSalary
	StateAwaitDescription
	StateAwaitOfferContact

	StateAwaitName
	StateAwaitJobType
	StateAwaitEducation
	StateAwaitCandidateContact

	StateDone
)

var stateNames = map[State]string{
	StateNone:                  "NONE",
	StateAwaitTitle:            "AWAIT_TITLE",
	StateAwaitCompany:          "AWAIT_COMPANY",
	StateAwaitSalary:           "AWAIT_SALARY",
	StateAwaitDescription:      "AWAIT_DESCRIPTION",
	StateAwaitOfferContact:     "AWAIT_CONTACT",
	StateAwaitName:             "AWAIT_NAME",
	StateAwaitJobType:          "AWAIT_JOB_TYPE",
	StateAwaitEducation:        "AWAIT_EDUCATION",
	StateAwaitCandidateContact: "AWAIT_CONTACT",
	StateDone:                  "DONE",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// Field names under which answers are stored.
const (
	FieldTitle       = "title"
	FieldCompany     = "company"
	FieldSalary      = "salary"
	FieldDescription = "description"
	FieldContact     = "contact"
	FieldName        = "name"
	FieldJobType     = "job_type"
	FieldEducation   = "education"
)

// Step is one question of a flow.
type Step struct {
	State  State
	Field  string
	Prompt string
}

// Flow is an ordered list of steps.
type Flow struct {
	Kind  Kind
	Steps []Step
}

// OfferPrompts are the questions of the job-offer form.
type OfferPrompts struct {
	Title, Company, Salary, Description, Contact string
}

// CandidatePrompts are the questions of the candidate form.
type CandidatePrompts struct {
	Name, JobType, Education, Contact string
}

// OfferFlow builds the five-step job-offer flow.
func OfferFlow(p OfferPrompts) Flow {
	return Flow{
		Kind: KindOffer,
		Steps: []Step{
			{State: StateAwaitTitle, Field: FieldTitle, Prompt: p.Title},
			{State: StateAwaitCompany, Field: FieldCompany, Prompt: p.Company},
			{State: StateAwaitSalary, Field: FieldSalary, Prompt: p.Salary},
			{State: StateAwaitDescription, Field: FieldDescription, Prompt: p.Description},
			{State: StateAwaitOfferContact, Field: FieldContact, Prompt: p.Contact},
		},
	}
}

// CandidateFlow builds the four-step candidate flow.
func CandidateFlow(p CandidatePrompts) Flow {
	return Flow{
		Kind: KindCandidate,
		Steps: []Step{
			{State: StateAwaitName, Field: FieldName, Prompt: p.Name},
			{State: StateAwaitJobType, Field: FieldJobType, Prompt: p.JobType},
			{State: StateAwaitEducation, Field: FieldEducation, Prompt: p.Education},
			{State: StateAwaitCandidateContact, Field: FieldContact, Prompt: p.Contact},
		},
	}
}
