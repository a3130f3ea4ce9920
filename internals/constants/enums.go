package constants

// Closed value sets. Anything outside these is a validation failure.

var Belts = []string{
	"White", "Yellow", "Orange", "Green", "Blue", "Brown",
	"Black Belt (1st Dan)", "Black Belt (2nd Dan)", "Black Belt (3rd Dan)",
	"Black Belt (4th Dan)", "Black Belt (5th Dan)",
}

var BloodGroups = []string{"A+", "A-", "B+", "B-", "O+", "O-", "AB+", "AB-"}

var Genders = []string{"male", "female", "other"}

var NoticeCategories = []string{"notice", "event", "tournament"}

var NoticePriorities = []string{"low", "medium", "high"}

var TargetAudiences = []string{"All Members", "Beginners", "Intermediate", "Advanced", "Seniors", "Youth"}

var GalleryCategories = []string{"training", "tournament", "grading", "event", "general"}

var TournamentStatuses = []string{
	"upcoming", "registration_open", "registration_closed", "ongoing", "completed", "cancelled",
}

var TournamentFormats = []string{"Swiss", "Round Robin", "Knockout", "Arena"}

var TournamentSkillLevels = []string{"Beginner", "Intermediate", "Advanced", "All Levels"}

var AgeGroups = []string{"Youth (Under 18)", "Adult (18-59)", "Senior (60+)", "All Ages"}

var ParticipantSkillLevels = []string{"Beginner", "Intermediate", "Advanced"}

var ParticipantStatuses = []string{"registered", "confirmed", "cancelled", "completed"}

var RegistrationStatuses = []string{"registered", "confirmed", "cancelled"}

var PaymentStatuses = []string{"pending", "paid", "refunded"}

const (
	DefaultBelt        = "White"
	DefaultNationality = "Bangladeshi"
)

// Enums indexes every set by the name used in `enum=` validation tags.
var Enums = map[string][]string{
	"belt":                   Belts,
	"blood_group":            BloodGroups,
	"gender":                 Genders,
	"notice_category":        NoticeCategories,
	"notice_priority":        NoticePriorities,
	"target_audience":        TargetAudiences,
	"gallery_category":       GalleryCategories,
	"tournament_status":      TournamentStatuses,
	"tournament_format":      TournamentFormats,
	"tournament_skill_level": TournamentSkillLevels,
	"age_group":              AgeGroups,
	"participant_skill":      ParticipantSkillLevels,
	"participant_status":     ParticipantStatuses,
	"registration_status":    RegistrationStatuses,
	"payment_status":         PaymentStatuses,
}

func InEnum(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
