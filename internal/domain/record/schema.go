package record

// Role classifies how a field is entered and rendered. Roles are declared
// per field instead of being guessed from field names.
type Role int

const (
	RoleText Role = iota
	RoleDate
	RoleChoice
	RoleRated
	RolePercentage
)

// FieldDef declares one field of a table schema.
type FieldDef struct {
	Name     string
	Role     Role
	Required bool
	// Choices enumerates the allowed values for RoleChoice fields whose
	// vocabulary is fixed. Choice fields fed from another table (scout,
	// player, position) leave this nil.
	Choices []string
}

// Shared field names. Reports carry a demographic snapshot of the player,
// so several names appear in more than one table.
const (
	FieldPosition      = "Position"
	FieldScout         = "Scout"
	FieldJoinDate      = "Join Date"
	FieldPlayer        = "Player"
	FieldBirthDate     = "Birth Date"
	FieldClub          = "Club"
	FieldUnder23       = "Under 23"
	FieldReportDate    = "Report Date"
	FieldSeason        = "Season"
	FieldCompetition   = "Competition"
	FieldHomeTeam      = "Home Team"
	FieldAwayTeam      = "Away Team"
	FieldPreferredFoot = "Preferred Foot"
	FieldAction        = "Action"
	FieldObservations  = "Observations"
)

// Action values recorded on a report.
const (
	ActionSign         = "Sign"
	ActionKeepScouting = "Keep Scouting"
	ActionDiscard      = "Discard"
)

// Actions lists the action vocabulary in its fixed display order.
func Actions() []string {
	return []string{ActionSign, ActionKeepScouting, ActionDiscard}
}

// PreferredFeet lists the preferred-foot vocabulary.
func PreferredFeet() []string {
	return []string{"Right", "Left", "Both"}
}

// RatedAttributes lists the 26 skill ratings captured on a report.
// Domain 0-5; 0 means "not rated".
var RatedAttributes = []string{
	"Ball Playing",
	"Aerial Play",
	"Reflexes",
	"Handling",
	"One on Ones",
	"Clearances",
	"Reaction Speed",
	"Positioning",
	"Short Distribution",
	"Long Distribution",
	"Duels",
	"Aerial Duels",
	"Stamina",
	"Speed",
	"Short Passing",
	"Long Passing",
	"Box Arrival",
	"Pressing",
	"Off Ball Movement",
	"Dribbling",
	"Finishing",
	"Link Up Play",
	"Heading",
	"Shooting",
	"Composure",
	"Leadership",
}

// PercentageStats lists the match statistics captured on a report.
// Domain 0-100; 0 means "not rated". Rendered with a "%" suffix.
var PercentageStats = []string{
	"Duels Won",
	"Aerial Duels Won",
	"Short Passes Completed",
	"Long Passes Completed",
	"Shots On Target",
}

// Schema returns the ordered default field set for a table. Extra fields
// found on disk are tolerated; they are appended after these on load.
func Schema(t Table) []FieldDef {
	switch t {
	case TablePosition:
		return []FieldDef{
			{Name: FieldPosition, Role: RoleText, Required: true},
		}
	case TableScout:
		return []FieldDef{
			{Name: FieldScout, Role: RoleText, Required: true},
			{Name: FieldJoinDate, Role: RoleDate},
		}
	case TablePlayer:
		return []FieldDef{
			{Name: FieldPlayer, Role: RoleText, Required: true},
			{Name: FieldBirthDate, Role: RoleDate},
			{Name: FieldClub, Role: RoleText},
			{Name: FieldUnder23, Role: RoleChoice, Choices: []string{"Yes", "No"}},
		}
	case TableReport:
		defs := []FieldDef{
			{Name: FieldReportDate, Role: RoleDate, Required: true},
			{Name: FieldScout, Role: RoleChoice, Required: true},
			{Name: FieldSeason, Role: RoleText},
			{Name: FieldCompetition, Role: RoleText},
			{Name: FieldHomeTeam, Role: RoleText},
			{Name: FieldAwayTeam, Role: RoleText},
			{Name: FieldPlayer, Role: RoleChoice, Required: true},
			{Name: FieldBirthDate, Role: RoleDate},
			{Name: FieldClub, Role: RoleText},
			{Name: FieldUnder23, Role: RoleChoice, Choices: []string{"Yes", "No"}},
			{Name: FieldPosition, Role: RoleChoice},
			{Name: FieldPreferredFoot, Role: RoleChoice, Choices: PreferredFeet()},
		}
		for _, a := range RatedAttributes {
			defs = append(defs, FieldDef{Name: a, Role: RoleRated})
		}
		for _, s := range PercentageStats {
			defs = append(defs, FieldDef{Name: s, Role: RolePercentage})
		}
		defs = append(defs,
			FieldDef{Name: FieldAction, Role: RoleChoice, Choices: Actions()},
			FieldDef{Name: FieldObservations, Role: RoleText},
		)
		return defs
	default:
		return nil
	}
}

// RoleOf looks up the declared role of a field within a table. Fields
// outside the default schema default to RoleText.
func RoleOf(t Table, field string) Role {
	for _, def := range Schema(t) {
		if def.Name == field {
			return def.Role
		}
	}
	return RoleText
}
