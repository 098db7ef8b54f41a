package models

// Incubation form statuses. Unlike the simpler entities, forms may also be
// marked in progress while under review.
const (
	IncubationFormStatusPending    = "pending"
	IncubationFormStatusApproved   = "approved"
	IncubationFormStatusRejected   = "rejected"
	IncubationFormStatusInProgress = "in_progress"
)

// Development stage of the submitted project.
const (
	DevStageIdea      = "idea"
	DevStagePrototype = "prototype"
	DevStageMVP       = "mvp"
	DevStageScaling   = "scaling"
)

var IncubationFormStatuses = []string{
	IncubationFormStatusPending,
	IncubationFormStatusApproved,
	IncubationFormStatusRejected,
	IncubationFormStatusInProgress,
}

func IsValidIncubationFormStatus(status string) bool {
	for _, s := range IncubationFormStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// IncubationForm is the extended intake record filled by a prospective team,
// distinct from the lighter Application entity.
type IncubationForm struct {
	BaseModel

	ProjectID string `gorm:"size:50;uniqueIndex;not null" json:"project_id"`

	TeamLeaderName  string `gorm:"size:255;not null" json:"team_leader_name"`
	TeamLeaderYear  string `gorm:"size:50;not null" json:"team_leader_year"`
	TeamLeaderEmail string `gorm:"size:254;not null" json:"team_leader_email"`
	TeamLeaderPhone string `gorm:"size:20;not null" json:"team_leader_phone"`

	TeamMembers string `gorm:"not null" json:"team_members"`

	ProjectTitle   string `gorm:"size:255;not null" json:"project_title"`
	ProjectDomain  string `gorm:"size:100" json:"project_domain"`
	IsAIProject    bool   `gorm:"default:false" json:"is_ai_project"`
	ProjectSummary string `gorm:"not null" json:"project_summary"`
	DevStage       string `gorm:"size:50;not null;default:idea" json:"dev_stage"`

	DemoLink     string `gorm:"not null" json:"demo_link"`
	ProjectVideo string `json:"project_video"`

	KeyMilestones        string `gorm:"not null" json:"key_milestones"`
	CurrentChallenges    string `gorm:"not null" json:"current_challenges"`
	ProblemStatement     string `gorm:"not null" json:"problem_statement"`
	TargetAudience       string `json:"target_audience"`
	ExpectedImpact       string `gorm:"not null" json:"expected_impact"`
	AdditionalMotivation string `json:"additional_motivation"`

	SupportingDocuments string `gorm:"size:255" json:"supporting_documents"`

	Confirmation bool   `gorm:"default:false" json:"confirmation"`
	Status       string `gorm:"size:20;not null;default:pending" json:"status"`

	// Relationships
	Score *IncubationFormScore `gorm:"foreignKey:IncubationFormID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// IncubationFormScore holds the jury's three sub-scores for a form. At most
// one score row exists per form; submissions replace the previous values.
type IncubationFormScore struct {
	BaseModel

	IncubationFormID     uint `gorm:"not null;uniqueIndex" json:"incubation_form_id"`
	ProblemUnderstanding int  `gorm:"default:0" json:"problem_understanding"`
	SolutionFit          int  `gorm:"default:0" json:"solution_fit"`
	TechnicalSoundness   int  `gorm:"default:0" json:"technical_soundness"`
}

func (s IncubationFormScore) TotalScore() int {
	return s.ProblemUnderstanding + s.SolutionFit + s.TechnicalSoundness
}
