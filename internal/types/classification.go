package types

// SecurityClassification is the classification level from a CLAS field.
type SecurityClassification int

const (
	// ClassificationUnknown is returned for unrecognised CLAS values.
	ClassificationUnknown SecurityClassification = iota
	ClassificationUnclassified
	ClassificationRestricted
	ClassificationConfidential
	ClassificationSecret
	ClassificationTopSecret
)

var classificationCodes = map[SecurityClassification]string{
	ClassificationUnknown:      "",
	ClassificationUnclassified: "U",
	ClassificationRestricted:   "R",
	ClassificationConfidential: "C",
	ClassificationSecret:       "S",
	ClassificationTopSecret:    "T",
}

var classificationNames = map[SecurityClassification]string{
	ClassificationUnknown:      "Unknown",
	ClassificationUnclassified: "Unclassified",
	ClassificationRestricted:   "Restricted",
	ClassificationConfidential: "Confidential",
	ClassificationSecret:       "Secret",
	ClassificationTopSecret:    "Top Secret",
}

// ParseSecurityClassification maps a CLAS code to a classification.
// Unrecognised codes map to ClassificationUnknown.
func ParseSecurityClassification(code string) SecurityClassification {
	for c, text := range classificationCodes {
		if c != ClassificationUnknown && text == code {
			return c
		}
	}
	return ClassificationUnknown
}

// Code returns the single character CLAS code.
func (c SecurityClassification) Code() string {
	return classificationCodes[c]
}

func (c SecurityClassification) String() string {
	if name, ok := classificationNames[c]; ok {
		return name
	}
	return classificationNames[ClassificationUnknown]
}
