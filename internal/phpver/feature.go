package phpver

// Feature is a syntax construct that only exists from some PHP release on.
type Feature uint8

const (
	Enums Feature = iota
	ReadonlyProperties
	NeverType
	PureIntersectionTypes
	FirstClassCallable
	NewInInitializers
	ExplicitOctal
	FinalClassConstants
	ReadonlyClasses
	DNFTypes
	StandaloneNullFalseTrue
	ConstantsInTraits
	TypedClassConstants
	DynamicClassConstantFetch
	PropertyHooks
	AsymmetricVisibility
	NewWithoutParentheses
	PipeOperator

	featureCount
)

type featureInfo struct {
	since Version
	name  string
}

var features = [featureCount]featureInfo{
	Enums:                     {PHP81, "enums"},
	ReadonlyProperties:        {PHP81, "readonly properties"},
	NeverType:                 {PHP81, "the never return type"},
	PureIntersectionTypes:     {PHP81, "intersection types"},
	FirstClassCallable:        {PHP81, "first-class callable syntax"},
	NewInInitializers:         {PHP81, "new in initializers"},
	ExplicitOctal:             {PHP81, "explicit octal notation"},
	FinalClassConstants:       {PHP81, "final class constants"},
	ReadonlyClasses:           {PHP82, "readonly classes"},
	DNFTypes:                  {PHP82, "disjunctive normal form types"},
	StandaloneNullFalseTrue:   {PHP82, "standalone null, false and true types"},
	ConstantsInTraits:         {PHP82, "constants in traits"},
	TypedClassConstants:       {PHP83, "typed class constants"},
	DynamicClassConstantFetch: {PHP83, "dynamic class constant fetch"},
	PropertyHooks:             {PHP84, "property hooks"},
	AsymmetricVisibility:      {PHP84, "asymmetric visibility"},
	NewWithoutParentheses:     {PHP84, "member access on new without parentheses"},
	PipeOperator:              {PHP85, "the pipe operator"},
}

// Since returns the first version supporting f.
func (f Feature) Since() Version {
	if f >= featureCount {
		return Latest
	}
	return features[f].since
}

func (f Feature) String() string {
	if f >= featureCount {
		return "unknown feature"
	}
	return features[f].name
}

// Supports reports whether v accepts f.
func (v Version) Supports(f Feature) bool {
	return v >= f.Since()
}
