package snirf

// Code identifies one specific schema-conformance finding. The values match
// the diagnostic vocabulary of the SNIRF specification's reference
// validator, so reports can be compared across implementations.
type Code string

// Structural codes emitted by the shared field pass.
const (
	CodeOK                        Code = "OK"
	CodeRequiredDatasetMissing    Code = "REQUIRED_DATASET_MISSING"
	CodeRequiredGroupMissing      Code = "REQUIRED_GROUP_MISSING"
	CodeOptionalDatasetMissing    Code = "OPTIONAL_DATASET_MISSING"
	CodeOptionalGroupMissing      Code = "OPTIONAL_GROUP_MISSING"
	CodeRequiredIndexedGroupEmpty Code = "REQUIRED_INDEXED_GROUP_EMPTY"
	CodeOptionalIndexedGroupEmpty Code = "OPTIONAL_INDEXED_GROUP_EMPTY"
)

// Entity-specific semantic codes.
const (
	CodeInvalidDatasetType            Code = "INVALID_DATASET_TYPE"
	CodeInvalidDatasetShape           Code = "INVALID_DATASET_SHAPE"
	CodeInvalidTime                   Code = "INVALID_TIME"
	CodeInvalidMeasurementList        Code = "INVALID_MEASUREMENTLIST"
	CodeInvalidStimDataLabels         Code = "INVALID_STIM_DATALABELS"
	CodeInvalidSourceIndex            Code = "INVALID_SOURCE_INDEX"
	CodeInvalidDetectorIndex          Code = "INVALID_DETECTOR_INDEX"
	CodeInvalidWavelengthIndex        Code = "INVALID_WAVELENGTH_INDEX"
	CodeUnrecognizedCoordinateSystem  Code = "UNRECOGNIZED_COORDINATE_SYSTEM"
	CodeNoCoordinateSystemDescription Code = "NO_COORDINATE_SYSTEM_DESCRIPTION"
	CodeUnrecognizedDataTypeLabel     Code = "UNRECOGNIZED_DATA_TYPE_LABEL"
	CodeInvalidFile                   Code = "INVALID_FILE"
)

// Severity classifies a Code. A result passes validation iff it contains no
// SeverityFatal issue.
type Severity int

const (
	SeverityOK      Severity = iota // field present and well-formed
	SeverityInfo                    // optional entry absent
	SeverityWarning                 // suspicious but tolerated
	SeverityFatal                   // schema violation
)

func (s Severity) String() string {
	switch s {
	case SeverityOK:
		return "OK"
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityFatal:
		return "FATAL"
	}
	return "UNKNOWN"
}

// MarshalJSON renders the severity as its name.
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// MarshalYAML renders the severity as its name.
func (s Severity) MarshalYAML() (any, error) {
	return s.String(), nil
}

var codeSeverity = map[Code]Severity{
	CodeOK:                        SeverityOK,
	CodeOptionalDatasetMissing:    SeverityInfo,
	CodeOptionalGroupMissing:      SeverityInfo,
	CodeOptionalIndexedGroupEmpty: SeverityInfo,

	CodeUnrecognizedCoordinateSystem: SeverityWarning,
	CodeUnrecognizedDataTypeLabel:    SeverityWarning,

	CodeRequiredDatasetMissing:        SeverityFatal,
	CodeRequiredGroupMissing:          SeverityFatal,
	CodeRequiredIndexedGroupEmpty:     SeverityFatal,
	CodeInvalidDatasetType:            SeverityFatal,
	CodeInvalidDatasetShape:           SeverityFatal,
	CodeInvalidTime:                   SeverityFatal,
	CodeInvalidMeasurementList:        SeverityFatal,
	CodeInvalidStimDataLabels:         SeverityFatal,
	CodeInvalidSourceIndex:            SeverityFatal,
	CodeInvalidDetectorIndex:          SeverityFatal,
	CodeInvalidWavelengthIndex:        SeverityFatal,
	CodeNoCoordinateSystemDescription: SeverityFatal,
	CodeInvalidFile:                   SeverityFatal,
}

// SeverityOf returns the severity class of code. Unknown codes classify as
// fatal so a forgotten table entry can never silently pass validation.
func SeverityOf(code Code) Severity {
	if s, ok := codeSeverity[code]; ok {
		return s
	}
	return SeverityFatal
}
