package catalog

// Level is the overall compliance classification derived from the yes count.
type Level string

const (
	LevelExcellent   Level = "excellent"
	LevelGood        Level = "good"
	LevelModerate    Level = "moderate"
	LevelSignificant Level = "significant"
	LevelMajor       Level = "major"
	LevelCritical    Level = "critical"
)

// Levels lists every level from best to worst. Band ladders follow this order.
var Levels = []Level{
	LevelExcellent,
	LevelGood,
	LevelModerate,
	LevelSignificant,
	LevelMajor,
	LevelCritical,
}

var levelMessages = map[Level]string{
	LevelExcellent:   "Excellent! Your organization demonstrates strong compliance readiness.",
	LevelGood:        "Good compliance posture with a few areas to strengthen.",
	LevelModerate:    "Moderate compliance. Several controls need attention.",
	LevelSignificant: "Significant gaps identified. Prioritize remediation of critical controls.",
	LevelMajor:       "Major compliance issues. Immediate remediation planning is required.",
	LevelCritical:    "Critical compliance risk. Engage leadership and begin remediation now.",
}

func ParseLevel(s string) (Level, bool) {
	for _, l := range Levels {
		if string(l) == s {
			return l, true
		}
	}
	return "", false
}

// Message is the fixed report wording for a level.
func (l Level) Message() string {
	return levelMessages[l]
}

func (l Level) rank() int {
	for i, candidate := range Levels {
		if candidate == l {
			return i
		}
	}
	return -1
}

// Band is one rung of the score ladder: yes counts >= Min reach Level.
type Band struct {
	Level Level
	Min   int
}

// LevelFor walks a descending ladder and returns the first band the yes
// count reaches. Validated ladders always end with a Min of 0.
func LevelFor(bands []Band, yesCount int) Level {
	for _, b := range bands {
		if yesCount >= b.Min {
			return b.Level
		}
	}
	return LevelCritical
}
