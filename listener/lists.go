package listener

import (
	"ldx/document"
)

type listDef struct {
	id      int
	ordered bool
	next    int
}

// listRegistry identifies list levels by structure, so returning to the same
// kind of list continues its numbering.
type listRegistry struct {
	defs map[string]*listDef
	last int
}

func newListRegistry() *listRegistry {
	return &listRegistry{defs: make(map[string]*listDef)}
}

// lookup returns definition for level, second value is true when definition
// was just created.
func (r *listRegistry) lookup(level document.ListLevel) (*listDef, bool) {
	sig := level.Signature()
	if d, ok := r.defs[sig]; ok {
		return d, false
	}
	r.last++
	d := &listDef{id: r.last, ordered: level.NumberingType.Ordered(), next: max(level.StartValue, 1)}
	r.defs[sig] = d
	return d, true
}

func (l *Listener) listDefinition(level document.ListLevel) *listDef {
	d, created := l.lists.lookup(level)
	if created {
		if d.ordered {
			l.sink.DefineOrderedListLevel(d.id, level)
		} else {
			l.sink.DefineUnorderedListLevel(d.id, level)
		}
	}
	return d
}

// enterList makes sure list levels for paragraph are open and returns number
// of the element being opened.
func (l *Listener) enterList(level document.ListLevel) int {
	depth := max(level.Level, 0) + 1
	d := l.listDefinition(level)

	for len(l.st.lists) > depth {
		l.closeList()
	}
	if len(l.st.lists) == depth && l.st.lists[depth-1].id != d.id {
		l.closeList()
	}
	for len(l.st.lists) < depth-1 {
		// missing outer levels get their own definitions
		outer := level
		outer.Level = len(l.st.lists)
		outer.StartValue = 0
		l.openList(l.listDefinition(outer))
	}
	if len(l.st.lists) < depth {
		l.openList(d)
	}

	if !d.ordered {
		return 0
	}
	value := d.next
	d.next++
	return value
}

func (l *Listener) openList(d *listDef) {
	if d.ordered {
		l.sink.OpenOrderedListLevel(d.id)
	} else {
		l.sink.OpenUnorderedListLevel(d.id)
	}
	l.st.lists = append(l.st.lists, listState{id: d.id, ordered: d.ordered})
}

func (l *Listener) closeList() {
	n := len(l.st.lists)
	if n == 0 {
		return
	}
	if l.st.lists[n-1].ordered {
		l.sink.CloseOrderedListLevel()
	} else {
		l.sink.CloseUnorderedListLevel()
	}
	l.st.lists = l.st.lists[:n-1]
}

func (l *Listener) closeLists() {
	for len(l.st.lists) > 0 {
		l.closeList()
	}
}
