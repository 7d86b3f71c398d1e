package document

// Sink consumes document structure. Every Open call is eventually followed by
// exactly one matching Close call, elements nest strictly.
type Sink interface {
	OpenDocument(meta Metadata)
	CloseDocument()
	OpenPageSpan(span PageSpan)
	ClosePageSpan()
	OpenHeader()
	CloseHeader()
	OpenFooter()
	CloseFooter()
	OpenSection(sec Section)
	CloseSection()
	OpenParagraph(p Paragraph)
	CloseParagraph()
	OpenSpan(f Font)
	CloseSpan()

	InsertText(text string)
	InsertTab()
	InsertLineBreak()

	DefineOrderedListLevel(id int, level ListLevel)
	DefineUnorderedListLevel(id int, level ListLevel)
	OpenOrderedListLevel(id int)
	CloseOrderedListLevel()
	OpenUnorderedListLevel(id int)
	CloseUnorderedListLevel()
	OpenListElement(p Paragraph, value int)
	CloseListElement()

	OpenFootnote(n Note)
	CloseFootnote()
	OpenEndnote(n Note)
	CloseEndnote()

	OpenTable(t Table)
	OpenTableRow(r Row)
	OpenTableCell(c Cell)
	InsertCoveredCell(c Cell)
	CloseTableCell()
	CloseTableRow()
	CloseTable()

	InsertPicture(p Picture)
	InsertField(f Field)
}

// NopSink ignores everything, embed it to implement only interesting calls.
type NopSink struct{}

var _ Sink = NopSink{}

func (NopSink) OpenDocument(Metadata) {}
func (NopSink) CloseDocument() {}
func (NopSink) OpenPageSpan(PageSpan) {}
func (NopSink) ClosePageSpan() {}
func (NopSink) OpenHeader() {}
func (NopSink) CloseHeader() {}
func (NopSink) OpenFooter() {}
func (NopSink) CloseFooter() {}
func (NopSink) OpenSection(Section) {}
func (NopSink) CloseSection() {}
func (NopSink) OpenParagraph(Paragraph) {}
func (NopSink) CloseParagraph() {}
func (NopSink) OpenSpan(Font) {}
func (NopSink) CloseSpan() {}
func (NopSink) InsertText(string) {}
func (NopSink) InsertTab() {}
func (NopSink) InsertLineBreak() {}
func (NopSink) DefineOrderedListLevel(int, ListLevel) {}
func (NopSink) DefineUnorderedListLevel(int, ListLevel) {}
func (NopSink) OpenOrderedListLevel(int) {}
func (NopSink) CloseOrderedListLevel() {}
func (NopSink) OpenUnorderedListLevel(int) {}
func (NopSink) CloseUnorderedListLevel() {}
func (NopSink) OpenListElement(Paragraph, int) {}
func (NopSink) CloseListElement() {}
func (NopSink) OpenFootnote(Note) {}
func (NopSink) CloseFootnote() {}
func (NopSink) OpenEndnote(Note) {}
func (NopSink) CloseEndnote() {}
func (NopSink) OpenTable(Table) {}
func (NopSink) OpenTableRow(Row) {}
func (NopSink) OpenTableCell(Cell) {}
func (NopSink) InsertCoveredCell(Cell) {}
func (NopSink) CloseTableCell() {}
func (NopSink) CloseTableRow() {}
func (NopSink) CloseTable() {}
func (NopSink) InsertPicture(Picture) {}
func (NopSink) InsertField(Field) {}
