package properties

import (
	"go.uber.org/zap"

	"cssmin/prefixes"
	"cssmin/values"
)

// Handler consumes declarations of one block in arrival order and returns
// the merged result on Finalize. HandleProperty returns false for
// properties it does not deal with.
type Handler interface {
	HandleProperty(p Property) bool
	Finalize() []Property
}

// Targets tells handlers which prefixes an unprefixed declaration expands
// to. Zero value disables expansion.
type Targets struct {
	Browsers *prefixes.Browsers
	Resolver prefixes.Resolver
}

// Resolve replaces the unprefixed bit of vp with the prefixes targets
// require for f. Sets without the unprefixed bit are returned as is.
func (t Targets) Resolve(f prefixes.Feature, vp prefixes.VendorPrefix) prefixes.VendorPrefix {
	if !vp.Contains(prefixes.None) || t.Resolver == nil || t.Browsers == nil {
		return vp
	}
	return vp.Remove(prefixes.None).Union(t.Resolver.PrefixesFor(f, t.Browsers))
}

type pendingValue[T any] struct {
	value  T
	prefix prefixes.VendorPrefix
	set    bool
}

// mergeRules describes one shorthand family for mergeEngine.
type mergeRules[T any] struct {
	slots int
	equal func(a, b T) bool

	// features used to resolve unprefixed output, nil when the family is
	// never prefixed
	combined     *prefixes.Feature
	slotFeatures []prefixes.Feature

	combine func(vals []T, vp prefixes.VendorPrefix) Property
	single  func(slot int, v T, vp prefixes.VendorPrefix) Property

	// order in which leftover slots are emitted one by one, slot order
	// when nil
	emitOrder []int
}

// mergeEngine holds pending (value, prefix set) pairs per sub-property
// slot, a side buffer of declarations which must be kept verbatim and the
// declarations decided so far.
type mergeEngine[T any] struct {
	rules   mergeRules[T]
	targets Targets
	log     *zap.Logger

	pending []pendingValue[T]
	logical []Property
	decls   []Property
}

func newMergeEngine[T any](rules mergeRules[T], targets Targets, log *zap.Logger) *mergeEngine[T] {
	return &mergeEngine[T]{
		rules:   rules,
		targets: targets,
		log:     log,
		pending: make([]pendingValue[T], rules.slots),
	}
}

// update records v declared with vp for slot. A pending different value
// whose prefixes do not cover vp is flushed first so the earlier
// declaration keeps its place in the output.
func (e *mergeEngine[T]) update(slot int, v T, vp prefixes.VendorPrefix) {
	if pv := e.pending[slot]; pv.set && !e.rules.equal(pv.value, v) && !pv.prefix.Contains(vp) {
		e.flush()
	}
	pv := &e.pending[slot]
	if pv.set {
		pv.value = v
		pv.prefix = pv.prefix.Union(vp)
		return
	}
	*pv = pendingValue[T]{value: v, prefix: vp, set: true}
}

// updateAll applies a shorthand: every slot is updated with the shorthand
// prefix set and buffered side declarations are dropped.
func (e *mergeEngine[T]) updateAll(vals []T, vp prefixes.VendorPrefix) {
	e.logical = e.logical[:0]
	for slot, v := range vals {
		e.update(slot, v, vp)
	}
}

// pushSide flushes pending slots and buffers p to be emitted verbatim.
func (e *mergeEngine[T]) pushSide(p Property) {
	e.flush()
	e.logical = append(e.logical, p)
}

func (e *mergeEngine[T]) resolve(f *prefixes.Feature, vp prefixes.VendorPrefix) prefixes.VendorPrefix {
	if f == nil {
		return vp
	}
	return e.targets.Resolve(*f, vp)
}

func (e *mergeEngine[T]) flush() {
	pending := e.pending
	e.pending = make([]pendingValue[T], e.rules.slots)

	e.decls = append(e.decls, e.logical...)
	e.logical = e.logical[:0]

	complete := true
	common := prefixes.Empty
	for i, pv := range pending {
		if !pv.set {
			complete = false
			break
		}
		if i == 0 {
			common = pv.prefix
		} else {
			common = common.Intersect(pv.prefix)
		}
	}

	emitted := 0
	if complete && !common.IsEmpty() {
		vals := make([]T, len(pending))
		for i := range pending {
			vals[i] = pending[i].value
			pending[i].prefix = pending[i].prefix.Remove(common)
		}
		e.decls = append(e.decls, e.rules.combine(vals, e.resolve(e.rules.combined, common)))
		emitted++
	}

	for i := range pending {
		slot := i
		if e.rules.emitOrder != nil {
			slot = e.rules.emitOrder[i]
		}
		pv := pending[slot]
		if !pv.set || pv.prefix.IsEmpty() {
			continue
		}
		var f *prefixes.Feature
		if e.rules.slotFeatures != nil {
			f = &e.rules.slotFeatures[slot]
		}
		e.decls = append(e.decls, e.rules.single(slot, pv.value, e.resolve(f, pv.prefix)))
		emitted++
	}

	if emitted > 0 {
		e.log.Debug("Flushed pending declarations",
			zap.Int("emitted", emitted),
			zap.Bool("shorthand", complete && !common.IsEmpty()),
			zap.Stringer("common", common))
	}
}

func (e *mergeEngine[T]) finalize() []Property {
	e.flush()
	out := e.decls
	e.decls = nil
	return out
}

// valuesEqual compares values of one property kind. Kinds which are not
// comparable with == provide an Equal method.
func valuesEqual(a, b values.Value) bool {
	if eq, ok := a.(interface{ Equal(values.Value) bool }); ok {
		return eq.Equal(b)
	}
	return a == b
}
