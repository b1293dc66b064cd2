package models

// ReportType is the closed set of report kinds.
type ReportType string

const (
	TypeBug            ReportType = "BUG"
	TypeUnknown        ReportType = "UNKNOWN"
	TypeImprovement    ReportType = "IMPROVEMENT"
	TypeFeatureRequest ReportType = "FEATURE_REQUEST"
)

// ReportTypes lists every valid report type in display order.
func ReportTypes() []ReportType {
	return []ReportType{TypeBug, TypeUnknown, TypeImprovement, TypeFeatureRequest}
}

// IsValid reports whether t is one of the known variants.
func (t ReportType) IsValid() bool {
	switch t {
	case TypeBug, TypeUnknown, TypeImprovement, TypeFeatureRequest:
		return true
	}
	return false
}

// Label returns the translation key used when displaying the type.
func (t ReportType) Label() string {
	switch t {
	case TypeBug:
		return "label.bug"
	case TypeUnknown:
		return "label.unknown"
	case TypeImprovement:
		return "label.improvement"
	case TypeFeatureRequest:
		return "label.feature_request"
	}
	return "label.unknown"
}
