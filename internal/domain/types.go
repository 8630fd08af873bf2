package domain

// Portal identifies a supported applicant-tracking-system platform
type Portal string

const (
	PortalWorkday    Portal = "workday"
	PortalGreenhouse Portal = "greenhouse"
	PortalLever      Portal = "lever"
	PortalICIMS      Portal = "icims"
	PortalTaleo      Portal = "taleo"
	PortalUnknown    Portal = "unknown"
)

// PortalDetection is the outcome of classifying the current page
type PortalDetection struct {
	Portal     Portal   `json:"portal"`
	Compatible bool     `json:"compatible"`
	Reasons    []string `json:"reasons"`
	Hostname   string   `json:"hostname"`
}

// ProfileKey names one attribute of a candidate profile
type ProfileKey string

const (
	KeyFirstName  ProfileKey = "firstName"
	KeyLastName   ProfileKey = "lastName"
	KeyEmail      ProfileKey = "email"
	KeyPhone      ProfileKey = "phone"
	KeyLinkedIn   ProfileKey = "linkedIn"
	KeyWebsite    ProfileKey = "website"
	KeyCity       ProfileKey = "city"
	KeyResumeText ProfileKey = "resumeText"
)

// CandidateProfile holds the values available for autofill. All fields are
// optional; an empty value means the attribute is never written to a page.
type CandidateProfile struct {
	FirstName  string `json:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	LinkedIn   string `json:"linkedIn,omitempty"`
	Website    string `json:"website,omitempty"`
	City       string `json:"city,omitempty"`
	ResumeText string `json:"resumeText,omitempty"`
}

// Value returns the profile value for a key, or "" when the key is unknown
// or unset.
func (p CandidateProfile) Value(key ProfileKey) string {
	switch key {
	case KeyFirstName:
		return p.FirstName
	case KeyLastName:
		return p.LastName
	case KeyEmail:
		return p.Email
	case KeyPhone:
		return p.Phone
	case KeyLinkedIn:
		return p.LinkedIn
	case KeyWebsite:
		return p.Website
	case KeyCity:
		return p.City
	case KeyResumeText:
		return p.ResumeText
	}
	return ""
}

// FieldKind categorizes a form control for the write strategy
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindTextarea FieldKind = "textarea"
	KindSelect   FieldKind = "select"
	KindRadio    FieldKind = "radio"
)

// FieldPreview is one row of a proposed field-to-value mapping. Rows are
// created by the preview builder, toggled or edited by the user, and consumed
// exactly once by the applier. Key is "<sourceKey>:<ordinal>" and is unique
// within a batch.
type FieldPreview struct {
	Key          string     `json:"key"`
	Label        string     `json:"label"`
	Value        string     `json:"value"`
	Enabled      bool       `json:"enabled"`
	Kind         FieldKind  `json:"fieldType"`
	SourceKey    ProfileKey `json:"sourceKey"`
	SelectorHint string     `json:"selectorHint"`
	Confidence   int        `json:"confidence"`
}

// ApplyResult reports the outcome of writing one preview row. Reason carries
// the diagnostic for unsuccessful rows; it never changes the meaning of
// Success.
type ApplyResult struct {
	Label   string `json:"label"`
	Success bool   `json:"success"`
	Reason  string `json:"reason,omitempty"`
}

// ExtractedJob is a job posting lifted from the current page
type ExtractedJob struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`
	Portal      Portal `json:"portal"`
}

// TrackingStatus is the state a job is tracked under
type TrackingStatus string

const (
	StatusSaved   TrackingStatus = "saved"
	StatusApplied TrackingStatus = "applied"
)

// TrackingPayload is the record handed to the job tracker collaborator. The
// engine only assembles it; persistence lives elsewhere.
type TrackingPayload struct {
	Company             string         `json:"company"`
	Role                string         `json:"role"`
	JobURL              string         `json:"jobUrl"`
	Portal              Portal         `json:"portal"`
	Status              TrackingStatus `json:"status"`
	AppliedViaExtension bool           `json:"appliedViaExtension"`
	Source              string         `json:"source"`
}
