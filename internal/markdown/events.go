// Package markdown compiles a markdown event stream into a styled
// document plus structural overlays for headings, code blocks, and
// horizontal rules.
package markdown

// EventKind discriminates markdown stream events.
type EventKind uint8

const (
	// EventStart opens a block or inline construct.
	EventStart EventKind = iota

	// EventEnd closes the matching construct.
	EventEnd

	// EventText carries literal text.
	EventText

	// EventCode carries an inline code span.
	EventCode

	// EventHTML carries raw HTML passed through as literal text.
	EventHTML

	// EventSoftBreak separates lines inside a paragraph.
	EventSoftBreak

	// EventHardBreak forces a visual line break.
	EventHardBreak

	// EventRule is a horizontal rule.
	EventRule

	// EventFootnoteRef is an inline footnote reference.
	EventFootnoteRef

	// EventTaskMarker is a task-list checkbox.
	EventTaskMarker
)

// String returns the string representation of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventEnd:
		return "end"
	case EventText:
		return "text"
	case EventCode:
		return "code"
	case EventHTML:
		return "html"
	case EventSoftBreak:
		return "soft-break"
	case EventHardBreak:
		return "hard-break"
	case EventRule:
		return "rule"
	case EventFootnoteRef:
		return "footnote-ref"
	case EventTaskMarker:
		return "task-marker"
	default:
		return "unknown"
	}
}

// BlockKind identifies the construct a Start/End event delimits.
type BlockKind uint8

const (
	BlockNone BlockKind = iota
	BlockParagraph
	BlockHeading
	BlockQuote
	BlockList
	BlockListItem
	BlockCodeBlock
	BlockTable
	BlockTableHead
	BlockTableRow
	BlockTableCell
	BlockEmphasis
	BlockStrong
	BlockStrikethrough
	BlockLink
	BlockImage
	BlockFootnoteDef
)

// String returns the string representation of the block kind.
func (b BlockKind) String() string {
	switch b {
	case BlockNone:
		return "none"
	case BlockParagraph:
		return "paragraph"
	case BlockHeading:
		return "heading"
	case BlockQuote:
		return "blockquote"
	case BlockList:
		return "list"
	case BlockListItem:
		return "list-item"
	case BlockCodeBlock:
		return "code-block"
	case BlockTable:
		return "table"
	case BlockTableHead:
		return "table-head"
	case BlockTableRow:
		return "table-row"
	case BlockTableCell:
		return "table-cell"
	case BlockEmphasis:
		return "emphasis"
	case BlockStrong:
		return "strong"
	case BlockStrikethrough:
		return "strikethrough"
	case BlockLink:
		return "link"
	case BlockImage:
		return "image"
	case BlockFootnoteDef:
		return "footnote-def"
	default:
		return "unknown"
	}
}

// Alignment is a table column alignment.
type Alignment uint8

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// String returns the string representation of the alignment.
func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "unknown"
	}
}

// Event is one element of the abstract markdown event stream. Kind
// selects the variant; which payload fields are meaningful depends on
// it. Any parser able to produce this stream can drive the compiler.
type Event struct {
	Kind  EventKind
	Block BlockKind // Start, End

	// Text carries the payload for Text, Code, and HTML, plus the
	// footnote label for FootnoteRef and Start of BlockFootnoteDef.
	Text string

	// Level is the heading level for Start/End of BlockHeading.
	Level int

	// Ordered and Start describe BlockList: whether items are numbered
	// and the first item's number.
	Ordered bool
	Start   int

	// Language is the trimmed fence label for BlockCodeBlock.
	Language string

	// Alignments carries the declared column alignments for BlockTable.
	Alignments []Alignment

	// Dest is the destination for BlockLink and BlockImage; Title is
	// the image title.
	Dest  string
	Title string

	// Checked reports the task-list checkbox state for TaskMarker.
	Checked bool
}

// StartBlock builds a Start event for the given block kind.
func StartBlock(b BlockKind) Event {
	return Event{Kind: EventStart, Block: b}
}

// EndBlock builds an End event for the given block kind.
func EndBlock(b BlockKind) Event {
	return Event{Kind: EventEnd, Block: b}
}

// TextEvent builds a literal text event.
func TextEvent(text string) Event {
	return Event{Kind: EventText, Text: text}
}
