package properties

import (
	"go.uber.org/zap"

	"cssmin/prefixes"
)

var (
	cornerLonghands = [4]PropertyID{
		PropBorderTopLeftRadius,
		PropBorderTopRightRadius,
		PropBorderBottomRightRadius,
		PropBorderBottomLeftRadius,
	}
	cornerFeatures = []prefixes.Feature{
		prefixes.BorderTopLeftRadius,
		prefixes.BorderTopRightRadius,
		prefixes.BorderBottomRightRadius,
		prefixes.BorderBottomLeftRadius,
	}
	borderRadiusFeature = prefixes.BorderRadius

	// single corners come out as top-left, top-right, bottom-left,
	// bottom-right
	cornerEmitOrder = []int{0, 1, 3, 2}
)

// BorderRadiusHandler rebuilds border-radius from corner longhands and
// their prefixed variants. Flow relative corners are kept verbatim and in
// order.
type BorderRadiusHandler struct {
	engine *mergeEngine[Corner]
}

func NewBorderRadiusHandler(targets Targets, log *zap.Logger) *BorderRadiusHandler {
	return &BorderRadiusHandler{
		engine: newMergeEngine(mergeRules[Corner]{
			slots:        len(cornerLonghands),
			equal:        func(a, b Corner) bool { return a == b },
			combined:     &borderRadiusFeature,
			slotFeatures: cornerFeatures,
			combine: func(vals []Corner, vp prefixes.VendorPrefix) Property {
				return Property{
					ID:     PropBorderRadius,
					Prefix: vp,
					Value:  borderRadiusFromCorners([4]Corner(vals)),
				}
			},
			single: func(slot int, v Corner, vp prefixes.VendorPrefix) Property {
				return Property{ID: cornerLonghands[slot], Prefix: vp, Value: v}
			},
			emitOrder: cornerEmitOrder,
		}, targets, log.Named("border-radius")),
	}
}

func (h *BorderRadiusHandler) HandleProperty(p Property) bool {
	switch p.ID {
	case PropBorderTopLeftRadius:
		h.engine.update(0, p.Value.(Corner), p.Prefix)
	case PropBorderTopRightRadius:
		h.engine.update(1, p.Value.(Corner), p.Prefix)
	case PropBorderBottomRightRadius:
		h.engine.update(2, p.Value.(Corner), p.Prefix)
	case PropBorderBottomLeftRadius:
		h.engine.update(3, p.Value.(Corner), p.Prefix)
	case PropBorderStartStartRadius, PropBorderStartEndRadius,
		PropBorderEndStartRadius, PropBorderEndEndRadius:
		h.engine.pushSide(p)
	case PropBorderRadius:
		corners := p.Value.(BorderRadius).Corners()
		h.engine.updateAll(corners[:], p.Prefix)
	default:
		return false
	}
	return true
}

func (h *BorderRadiusHandler) Finalize() []Property {
	return h.engine.finalize()
}
