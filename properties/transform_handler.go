package properties

import (
	"go.uber.org/zap"

	"cssmin/prefixes"
	"cssmin/values"
)

// transform family properties in output order with their features
var transformFamily = []struct {
	id      PropertyID
	feature prefixes.Feature
}{
	{PropTransform, prefixes.Transform},
	{PropTransformOrigin, prefixes.TransformOrigin},
	{PropTransformStyle, prefixes.TransformStyle},
	{PropBackfaceVisibility, prefixes.BackfaceVisibility},
	{PropPerspective, prefixes.Perspective},
	{PropPerspectiveOrigin, prefixes.PerspectiveOrigin},
}

// TransformHandler collapses one value declared under several vendor
// prefixes into a single property and widens unprefixed values to the
// prefixes targets need.
type TransformHandler struct {
	engines map[PropertyID]*mergeEngine[values.Value]
	order   []PropertyID
}

func NewTransformHandler(targets Targets, log *zap.Logger) *TransformHandler {
	h := &TransformHandler{engines: make(map[PropertyID]*mergeEngine[values.Value], len(transformFamily))}
	for _, m := range transformFamily {
		id, feature := m.id, m.feature
		emit := func(v values.Value, vp prefixes.VendorPrefix) Property {
			return Property{ID: id, Prefix: vp, Value: v}
		}
		h.engines[id] = newMergeEngine(mergeRules[values.Value]{
			slots:    1,
			equal:    valuesEqual,
			combined: &feature,
			combine: func(vals []values.Value, vp prefixes.VendorPrefix) Property {
				return emit(vals[0], vp)
			},
			// one slot is always complete, so leftovers never happen
			single: func(_ int, v values.Value, vp prefixes.VendorPrefix) Property {
				return emit(v, vp)
			},
		}, targets, log.Named("transform").With(zap.Stringer("property", id)))
		h.order = append(h.order, id)
	}
	return h
}

func (h *TransformHandler) HandleProperty(p Property) bool {
	e, ok := h.engines[p.ID]
	if !ok {
		return false
	}
	e.update(0, p.Value, p.Prefix)
	return true
}

func (h *TransformHandler) Finalize() []Property {
	var out []Property
	for _, id := range h.order {
		out = append(out, h.engines[id].finalize()...)
	}
	return out
}
