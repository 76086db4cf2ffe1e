package models

// MindsetTagName is one of a fixed closed set of psychological states.
type MindsetTagName string

const (
	// Positive tags.
	TagDisciplined MindsetTagName = "DISCIPLINED"
	TagPatient     MindsetTagName = "PATIENT"
	TagConfident   MindsetTagName = "CONFIDENT"
	TagFocused     MindsetTagName = "FOCUSED"
	TagCalm        MindsetTagName = "CALM"

	// Negative tags.
	TagFOMO      MindsetTagName = "FOMO"
	TagRevenge   MindsetTagName = "REVENGE_TRADING"
	TagAnxious   MindsetTagName = "ANXIOUS"
	TagGreedy    MindsetTagName = "GREEDY"
	TagImpulsive MindsetTagName = "IMPULSIVE"
	TagFearful   MindsetTagName = "FEARFUL"

	// Neutral tags.
	TagNeutral   MindsetTagName = "NEUTRAL"
	TagUncertain MindsetTagName = "UNCERTAIN"
)

// MindsetCategory partitions the tag set.
type MindsetCategory string

const (
	MindsetPositive MindsetCategory = "POSITIVE"
	MindsetNegative MindsetCategory = "NEGATIVE"
	MindsetNeutral  MindsetCategory = "NEUTRAL"
)

// Intensity represents how strongly a mindset state was felt.
type Intensity string

const (
	IntensityLow    Intensity = "LOW"
	IntensityMedium Intensity = "MEDIUM"
	IntensityHigh   Intensity = "HIGH"
)

// IsValid reports whether the intensity is one of the known values.
func (i Intensity) IsValid() bool {
	switch i {
	case IntensityLow, IntensityMedium, IntensityHigh:
		return true
	}
	return false
}

// MindsetTag records a psychological state attached to a trade.
type MindsetTag struct {
	TradeID   string
	Tag       MindsetTagName
	Intensity Intensity
}

var mindsetCategories = map[MindsetTagName]MindsetCategory{
	TagDisciplined: MindsetPositive,
	TagPatient:     MindsetPositive,
	TagConfident:   MindsetPositive,
	TagFocused:     MindsetPositive,
	TagCalm:        MindsetPositive,
	TagFOMO:        MindsetNegative,
	TagRevenge:     MindsetNegative,
	TagAnxious:     MindsetNegative,
	TagGreedy:      MindsetNegative,
	TagImpulsive:   MindsetNegative,
	TagFearful:     MindsetNegative,
	TagNeutral:     MindsetNeutral,
	TagUncertain:   MindsetNeutral,
}

// Category returns the category of the tag. Unknown tags are NEUTRAL.
func (n MindsetTagName) Category() MindsetCategory {
	if c, ok := mindsetCategories[n]; ok {
		return c
	}
	return MindsetNeutral
}

// IsValid reports whether the tag belongs to the closed set.
func (n MindsetTagName) IsValid() bool {
	_, ok := mindsetCategories[n]
	return ok
}
