package prefixes

import "fmt"

// Feature is a prefix sensitive CSS feature.
type Feature uint8

const (
	BorderRadius Feature = iota
	BorderTopLeftRadius
	BorderTopRightRadius
	BorderBottomRightRadius
	BorderBottomLeftRadius
	Transform
	TransformOrigin
	TransformStyle
	BackfaceVisibility
	Perspective
	PerspectiveOrigin
	AtKeyframes

	featureCount
)

var featureNames = [featureCount]string{
	BorderRadius:            "border-radius",
	BorderTopLeftRadius:     "border-top-left-radius",
	BorderTopRightRadius:    "border-top-right-radius",
	BorderBottomRightRadius: "border-bottom-right-radius",
	BorderBottomLeftRadius:  "border-bottom-left-radius",
	Transform:               "transform",
	TransformOrigin:         "transform-origin",
	TransformStyle:          "transform-style",
	BackfaceVisibility:      "backface-visibility",
	Perspective:             "perspective",
	PerspectiveOrigin:       "perspective-origin",
	AtKeyframes:             "keyframes",
}

func (f Feature) String() string {
	if f < featureCount {
		return featureNames[f]
	}
	return fmt.Sprintf("Feature(%d)", int(f))
}

// FeatureByName maps a feature name from the prefix table.
func FeatureByName(name string) (Feature, bool) {
	for i, n := range featureNames {
		if n == name {
			return Feature(i), true
		}
	}
	return 0, false
}

// Resolver answers which prefixes targets need for a feature. The result
// always contains None.
type Resolver interface {
	PrefixesFor(f Feature, targets *Browsers) VendorPrefix
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(f Feature, targets *Browsers) VendorPrefix

func (fn ResolverFunc) PrefixesFor(f Feature, targets *Browsers) VendorPrefix {
	return fn(f, targets) | None
}
