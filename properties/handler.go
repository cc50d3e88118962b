package properties

import (
	"go.uber.org/zap"
)

type handlerSet struct {
	handlers []Handler
	decls    []Property
}

func newHandlerSet(targets Targets, log *zap.Logger) handlerSet {
	return handlerSet{handlers: []Handler{
		NewBorderRadiusHandler(targets, log),
		NewOutlineHandler(log),
		NewTransformHandler(targets, log),
	}}
}

func (s *handlerSet) handle(p Property) {
	for _, h := range s.handlers {
		if h.HandleProperty(p) {
			return
		}
	}
	s.decls = append(s.decls, p)
}

func (s *handlerSet) finalize(important bool) []Property {
	out := s.decls
	s.decls = nil
	for _, h := range s.handlers {
		out = append(out, h.Finalize()...)
	}
	for i := range out {
		out[i].Important = important
	}
	return out
}

// DeclarationHandler merges one declaration block. Important and normal
// declarations never merge with each other.
type DeclarationHandler struct {
	log       *zap.Logger
	normal    handlerSet
	important handlerSet
	handled   int
}

func NewDeclarationHandler(targets Targets, log *zap.Logger) *DeclarationHandler {
	log = log.Named("declarations")
	return &DeclarationHandler{
		log:       log,
		normal:    newHandlerSet(targets, log),
		important: newHandlerSet(targets, log.Named("important")),
	}
}

// Handle takes the next declaration of the block.
func (h *DeclarationHandler) Handle(p Property) {
	h.handled++
	if p.Important {
		h.important.handle(p)
		return
	}
	h.normal.handle(p)
}

// Finalize returns merged declarations: normal ones first, then important
// ones. Declarations no handler takes keep their relative order ahead of
// merged output of the same importance.
func (h *DeclarationHandler) Finalize() []Property {
	out := h.normal.finalize(false)
	out = append(out, h.important.finalize(true)...)
	h.log.Debug("Declaration block merged", zap.Int("in", h.handled), zap.Int("out", len(out)))
	h.handled = 0
	return out
}

// Merge runs a fresh DeclarationHandler over decls.
func Merge(decls []Property, targets Targets, log *zap.Logger) []Property {
	h := NewDeclarationHandler(targets, log)
	for _, d := range decls {
		h.Handle(d)
	}
	return h.Finalize()
}
