package markdown

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Parse turns markdown source into the abstract event stream consumed
// by Compile. The extension set matches the constructs the compiler
// understands: tables, strikethrough, task lists, and footnotes.
func Parse(source []byte) []Event {
	md := goldmark.New(goldmark.WithExtensions(
		extension.Table,
		extension.Strikethrough,
		extension.TaskList,
		extension.Footnote,
	))
	doc := md.Parser().Parse(text.NewReader(source))

	w := &walker{source: source}
	_ = ast.Walk(doc, w.visit)
	return w.events
}

// walker flattens the goldmark AST into the event stream.
type walker struct {
	source []byte
	events []Event
}

func (w *walker) emit(ev Event) {
	w.events = append(w.events, ev)
}

func (w *walker) emitBoundary(b BlockKind, entering bool) {
	if entering {
		w.emit(StartBlock(b))
	} else {
		w.emit(EndBlock(b))
	}
}

func (w *walker) visit(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node := n.(type) {
	case *ast.Document, *ast.TextBlock:
		// TextBlock wraps tight list item content; its children flow
		// into the current line without paragraph boundaries.

	case *ast.Heading:
		ev := StartBlock(BlockHeading)
		if !entering {
			ev = EndBlock(BlockHeading)
		}
		ev.Level = node.Level
		w.emit(ev)

	case *ast.Paragraph:
		w.emitBoundary(BlockParagraph, entering)

	case *ast.Blockquote:
		w.emitBoundary(BlockQuote, entering)

	case *ast.List:
		if entering {
			ev := StartBlock(BlockList)
			ev.Ordered = node.IsOrdered()
			if ev.Ordered {
				ev.Start = node.Start
			}
			w.emit(ev)
		} else {
			w.emit(EndBlock(BlockList))
		}

	case *ast.ListItem:
		w.emitBoundary(BlockListItem, entering)

	case *ast.FencedCodeBlock:
		if entering {
			ev := StartBlock(BlockCodeBlock)
			ev.Language = w.fenceInfo(node)
			w.emit(ev)
			w.emitCodeLines(node.Lines())
		} else {
			w.emit(EndBlock(BlockCodeBlock))
		}

	case *ast.CodeBlock:
		if entering {
			w.emit(StartBlock(BlockCodeBlock))
			w.emitCodeLines(node.Lines())
		} else {
			w.emit(EndBlock(BlockCodeBlock))
		}

	case *ast.HTMLBlock:
		if entering {
			w.emitHTMLBlock(node)
			return ast.WalkSkipChildren, nil
		}

	case *ast.ThematicBreak:
		if entering {
			w.emit(Event{Kind: EventRule})
		}

	case *ast.Text:
		if entering {
			if value := node.Segment.Value(w.source); len(value) > 0 {
				w.emit(TextEvent(string(value)))
			}
			if node.HardLineBreak() {
				w.emit(Event{Kind: EventHardBreak})
			} else if node.SoftLineBreak() {
				w.emit(Event{Kind: EventSoftBreak})
			}
		}

	case *ast.String:
		if entering && len(node.Value) > 0 {
			w.emit(TextEvent(string(node.Value)))
		}

	case *ast.CodeSpan:
		if entering {
			w.emit(Event{Kind: EventCode, Text: w.innerText(node)})
			return ast.WalkSkipChildren, nil
		}

	case *ast.Emphasis:
		kind := BlockEmphasis
		if node.Level >= 2 {
			kind = BlockStrong
		}
		w.emitBoundary(kind, entering)

	case *extast.Strikethrough:
		w.emitBoundary(BlockStrikethrough, entering)

	case *ast.Link:
		if entering {
			ev := StartBlock(BlockLink)
			ev.Dest = string(node.Destination)
			w.emit(ev)
		} else {
			w.emit(EndBlock(BlockLink))
		}

	case *ast.AutoLink:
		if entering {
			url := string(node.URL(w.source))
			label := string(node.Label(w.source))
			if label == "" {
				label = url
			}
			ev := StartBlock(BlockLink)
			ev.Dest = url
			w.emit(ev)
			w.emit(TextEvent(label))
			w.emit(EndBlock(BlockLink))
			return ast.WalkSkipChildren, nil
		}

	case *ast.Image:
		// The alt text children still walk through as literal text
		// after the label line.
		if entering {
			ev := StartBlock(BlockImage)
			ev.Dest = string(node.Destination)
			ev.Title = string(node.Title)
			w.emit(ev)
		} else {
			w.emit(EndBlock(BlockImage))
		}

	case *ast.RawHTML:
		if entering {
			w.emitRawHTML(node)
			return ast.WalkSkipChildren, nil
		}

	case *extast.Table:
		if entering {
			ev := StartBlock(BlockTable)
			ev.Alignments = tableAlignments(node.Alignments)
			w.emit(ev)
		} else {
			w.emit(EndBlock(BlockTable))
		}

	case *extast.TableHeader:
		w.emitBoundary(BlockTableHead, entering)

	case *extast.TableRow:
		w.emitBoundary(BlockTableRow, entering)

	case *extast.TableCell:
		w.emitBoundary(BlockTableCell, entering)

	case *extast.TaskCheckBox:
		if entering {
			w.emit(Event{Kind: EventTaskMarker, Checked: node.IsChecked})
		}

	case *extast.FootnoteLink:
		if entering {
			w.emit(Event{Kind: EventFootnoteRef, Text: strconv.Itoa(node.Index)})
		}

	case *extast.Footnote:
		if entering {
			ev := StartBlock(BlockFootnoteDef)
			ev.Text = string(node.Ref)
			w.emit(ev)
		} else {
			w.emit(EndBlock(BlockFootnoteDef))
		}

	case *extast.FootnoteList:
		// Container only; each definition walks as a child.

	case *extast.FootnoteBacklink:
		return ast.WalkSkipChildren, nil

	default:
		// Unrecognized constructs degrade to their literal text
		// children.
	}
	return ast.WalkContinue, nil
}

// fenceInfo returns the trimmed fence info string ("" when absent).
// The whole info line is kept, not just the first word.
func (w *walker) fenceInfo(node *ast.FencedCodeBlock) string {
	if node.Info == nil {
		return ""
	}
	return strings.TrimSpace(string(node.Info.Segment.Value(w.source)))
}

// emitCodeLines emits each raw source line of a code block as one text
// event ending in a newline, so the compiler flushes one document line
// per source line.
func (w *walker) emitCodeLines(lines *text.Segments) {
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		value := string(segment.Value(w.source))
		if !strings.HasSuffix(value, "\n") {
			value += "\n"
		}
		w.emit(TextEvent(value))
	}
}

// innerText gathers the literal text of an inline node's children.
func (w *walker) innerText(n ast.Node) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(w.source))
		case *ast.String:
			b.Write(t.Value)
		}
	}
	return b.String()
}

// emitHTMLBlock passes raw block HTML through one line at a time so no
// span ever carries an embedded newline.
func (w *walker) emitHTMLBlock(node *ast.HTMLBlock) {
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		w.emitHTMLLine(string(segment.Value(w.source)))
	}
	if node.HasClosure() {
		w.emitHTMLLine(string(node.ClosureLine.Value(w.source)))
	}
}

func (w *walker) emitHTMLLine(line string) {
	line = strings.TrimRight(line, "\n")
	if line == "" {
		return
	}
	w.emit(Event{Kind: EventHTML, Text: line})
	w.emit(Event{Kind: EventSoftBreak})
}

func (w *walker) emitRawHTML(node *ast.RawHTML) {
	var b strings.Builder
	for i := 0; i < node.Segments.Len(); i++ {
		segment := node.Segments.At(i)
		b.Write(segment.Value(w.source))
	}
	if b.Len() > 0 {
		w.emit(Event{Kind: EventHTML, Text: b.String()})
	}
}

func tableAlignments(alignments []extast.Alignment) []Alignment {
	out := make([]Alignment, len(alignments))
	for i, a := range alignments {
		switch a {
		case extast.AlignRight:
			out[i] = AlignRight
		case extast.AlignCenter:
			out[i] = AlignCenter
		default:
			out[i] = AlignLeft
		}
	}
	return out
}
