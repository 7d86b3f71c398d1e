package listener

import (
	"go.uber.org/zap"

	"ldx/zone"
)

// Dispatcher renders out of line zones at most once. Repeated and recursive
// references produce placeholder instead of content.
type Dispatcher struct {
	zones       *zone.Registry
	renderer    Renderer
	placeholder string
	active      map[zone.Key]bool
	log         *zap.Logger
}

func newDispatcher(zones *zone.Registry, r Renderer, placeholder string, log *zap.Logger) *Dispatcher {
	if zones == nil {
		zones = zone.NewRegistry()
	}
	if len(placeholder) == 0 {
		placeholder = " "
	}
	return &Dispatcher{
		zones:       zones,
		renderer:    r,
		placeholder: placeholder,
		active:      make(map[zone.Key]bool),
		log:         log.Named("dispatcher"),
	}
}

// unclaimed returns zones never rendered, main text excluded.
func (d *Dispatcher) unclaimed() []zone.Key {
	var keys []zone.Key
	for _, k := range d.zones.Unclaimed() {
		if k.Kind != zone.KindMain {
			keys = append(keys, k)
		}
	}
	return keys
}

// dispatch renders zone content through renderer into the current listener
// state or inserts placeholder when zone cannot be rendered.
func (l *Listener) dispatch(key zone.Key) {
	d := l.dispatcher

	switch {
	case d.active[key]:
		d.log.Debug("Recursive zone reference", zap.Stringer("zone", key))
		l.InsertText(d.placeholder)
		return
	case d.renderer == nil:
		d.log.Debug("No renderer for zone", zap.Stringer("zone", key))
		l.InsertText(d.placeholder)
		return
	}
	if _, ok := d.zones.Get(key); !ok {
		d.log.Debug("Reference to unknown zone", zap.Stringer("zone", key))
		l.InsertText(d.placeholder)
		return
	}
	if !d.zones.Claim(key) {
		d.log.Debug("Zone already rendered", zap.Stringer("zone", key))
		l.InsertText(d.placeholder)
		return
	}

	d.active[key] = true
	defer delete(d.active, key)

	if err := d.renderer.Render(key); err != nil {
		if l.failed() {
			return
		}
		d.log.Warn("Unable to render zone, skipping", zap.Stringer("zone", key), zap.Error(err))
		l.keepRecovered(err)
		l.InsertText(d.placeholder)
	}
}
