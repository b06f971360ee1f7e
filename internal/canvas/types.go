package canvas

// Course is a Canvas course as returned by /courses with include[]=term.
type Course struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	CourseCode string `json:"course_code,omitempty"`
	Term       *Term  `json:"term,omitempty"`
}

// Term is the enrollment term a course belongs to.
type Term struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"name"`
}

// TermName returns the course's term name, or "" when Canvas sent none.
func (c Course) TermName() string {
	if c.Term == nil {
		return ""
	}
	return c.Term.Name
}

// Assignment is a Canvas assignment. Optional fields are pointers so that
// "not set" is distinguishable from a zero value.
type Assignment struct {
	ID             int     `json:"id"`
	CourseID       int     `json:"course_id,omitempty"`
	Name           string  `json:"name"`
	Description    *string `json:"description"`
	DueAt          *string `json:"due_at"`
	LockAt         *string `json:"lock_at"`
	UnlockAt       *string `json:"unlock_at"`
	PointsPossible float64 `json:"points_possible"`
	GradingType    string  `json:"grading_type,omitempty"`
	HTMLURL        string  `json:"html_url,omitempty"`
	Published      bool    `json:"published"`

	SubmissionTypes   []string `json:"submission_types,omitempty"`
	AllowedExtensions []string `json:"allowed_extensions,omitempty"`
	// AllowedAttempts is -1 for unlimited attempts and nil when not set.
	AllowedAttempts *int `json:"allowed_attempts"`

	HasGroupCategory     bool `json:"has_group_category"`
	GroupCategoryID      *int `json:"group_category_id,omitempty"`
	PeerReviews          bool `json:"peer_reviews"`
	AutomaticPeerReviews bool `json:"automatic_peer_reviews"`
	PeerReviewCount      int  `json:"peer_review_count,omitempty"`
	WordCountEnabled     bool `json:"word_count_enabled,omitempty"`
	WordCountMin         *int `json:"word_count_min,omitempty"`
	WordCountMax         *int `json:"word_count_max,omitempty"`

	ExternalTool *ExternalTool    `json:"external_tool_tag_attributes,omitempty"`
	Rubric       []RubricCriteria `json:"rubric,omitempty"`

	OnlyVisibleToOverrides bool   `json:"only_visible_to_overrides"`
	LockedForUser          bool   `json:"locked_for_user"`
	LockExplanation        string `json:"lock_explanation,omitempty"`

	TurnitinEnabled        bool `json:"turnitin_enabled"`
	VericiteEnabled        bool `json:"vericite_enabled"`
	AnonymizeStudents      bool `json:"anonymize_students"`
	RequireLockdownBrowser bool `json:"require_lockdown_browser"`
}

// ExternalTool describes an LTI tool an assignment launches.
type ExternalTool struct {
	URL    string `json:"url"`
	NewTab bool   `json:"new_tab"`
}

// RubricCriteria is one row of an assignment rubric.
type RubricCriteria struct {
	ID              string  `json:"id"`
	Points          float64 `json:"points"`
	Description     string  `json:"description"`
	LongDescription string  `json:"long_description,omitempty"`
}

// DashboardCard is a course tile from the user's dashboard.
type DashboardCard struct {
	ID           int    `json:"id"`
	ShortName    string `json:"shortName"`
	OriginalName string `json:"originalName"`
	CourseCode   string `json:"courseCode"`
	Term         string `json:"term,omitempty"`
	Href         string `json:"href,omitempty"`
}

// User is the authenticated user from /users/self.
type User struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	LoginID      string `json:"login_id,omitempty"`
	PrimaryEmail string `json:"primary_email,omitempty"`
}
