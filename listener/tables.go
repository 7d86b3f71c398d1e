package listener

import (
	"ldx/document"
)

// InTable reports whether a table is open at the current nesting level.
func (l *Listener) InTable() bool {
	return len(l.st.tables) > 0
}

// OpenTable opens table. Paragraph justification active at this point is
// restored when table is closed.
func (l *Listener) OpenTable(t document.Table) {
	if l.failed() {
		return
	}
	l.closeParagraph()
	l.closeLists()
	if len(l.st.tables) == 0 {
		l.OpenSection()
		if l.failed() {
			return
		}
	} else if !l.st.tables[len(l.st.tables)-1].cellOpen {
		l.OpenTableCell(document.Cell{})
	}
	l.st.tables = append(l.st.tables, tableState{justification: l.st.para.Justification})
	l.sink.OpenTable(t)
}

// OpenTableRow opens row, closing previous one.
func (l *Listener) OpenTableRow(r document.Row) {
	if l.failed() {
		return
	}
	if len(l.st.tables) == 0 {
		l.log.Debug("Row outside of table, opening table")
		l.OpenTable(document.Table{})
		if l.failed() {
			return
		}
	}
	l.CloseTableRow()
	l.sink.OpenTableRow(r)
	l.st.tables[len(l.st.tables)-1].rowOpen = true
}

// OpenTableCell opens cell, row is opened first if necessary.
func (l *Listener) OpenTableCell(c document.Cell) {
	if l.failed() {
		return
	}
	if !l.ensureRow() {
		return
	}
	l.CloseTableCell()
	l.sink.OpenTableCell(c)
	l.st.tables[len(l.st.tables)-1].cellOpen = true
}

// InsertCoveredCell inserts cell covered by span of another one.
func (l *Listener) InsertCoveredCell(c document.Cell) {
	if l.failed() {
		return
	}
	if !l.ensureRow() {
		return
	}
	l.CloseTableCell()
	l.sink.InsertCoveredCell(c)
}

func (l *Listener) ensureRow() bool {
	if len(l.st.tables) == 0 || !l.st.tables[len(l.st.tables)-1].rowOpen {
		l.OpenTableRow(document.Row{})
	}
	return !l.failed()
}

func (l *Listener) CloseTableCell() {
	if l.failed() || len(l.st.tables) == 0 {
		return
	}
	t := &l.st.tables[len(l.st.tables)-1]
	if !t.cellOpen {
		return
	}
	l.closeParagraph()
	l.closeLists()
	l.sink.CloseTableCell()
	// closeParagraph never touches table stack, t is still valid
	t.cellOpen = false
}

func (l *Listener) CloseTableRow() {
	if l.failed() || len(l.st.tables) == 0 {
		return
	}
	l.CloseTableCell()
	t := &l.st.tables[len(l.st.tables)-1]
	if !t.rowOpen {
		return
	}
	l.sink.CloseTableRow()
	t.rowOpen = false
}

// CloseTable flushes open cell and row, closes table and restores
// justification. Page break deferred while table was open is materialized.
func (l *Listener) CloseTable() {
	if l.failed() || len(l.st.tables) == 0 {
		return
	}
	l.CloseTableRow()
	n := len(l.st.tables)
	l.sink.CloseTable()
	l.st.para.Justification = l.st.tables[n-1].justification
	l.st.tables = l.st.tables[:n-1]

	if len(l.st.tables) == 0 && l.st.pendingPage && !l.st.paragraphOpen && !l.st.listElementOpen {
		l.st.pendingPage = false
		l.breakPage()
	}
}

func (l *Listener) closeTables() {
	for len(l.st.tables) > 0 && !l.failed() {
		l.CloseTable()
	}
}
