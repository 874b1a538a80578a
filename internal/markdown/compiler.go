package markdown

import (
	"strconv"
	"strings"

	"github.com/cdfuller/md-viewer/internal/renderer/core"
	"github.com/cdfuller/md-viewer/internal/renderer/overlay"
)

// DefaultMaxTableWidth bounds table grids when the caller supplies no
// width of its own.
const DefaultMaxTableWidth = 80

// codeIndent is prepended to every line inside a code block.
const codeIndent = "    "

// tabStop is the column multiple tabs expand to. Terminal cells cannot
// carry a literal tab, so expansion happens as spans are built.
const tabStop = 4

// bulletGlyphs cycles by list nesting depth so nested unordered lists
// stay visually distinct.
var bulletGlyphs = [4]string{"•", "◦", "▪", "‣"}

// Options configures a compile pass.
type Options struct {
	// MaxTableWidth bounds rendered table grids, borders included.
	// Values below 1 fall back to DefaultMaxTableWidth.
	MaxTableWidth int

	// Styles supplies the span styles.
	Styles StyleSet
}

// DefaultOptions returns the standard compile configuration.
func DefaultOptions() Options {
	return Options{
		MaxTableWidth: DefaultMaxTableWidth,
		Styles:        DefaultStyles(),
	}
}

// Result is the output of one compile pass. Overlay indices reference
// Document; both are immutable once returned and must be replaced
// together on the next compile.
type Result struct {
	Document core.Document
	Overlays overlay.Set

	// HasTables reports whether the source contained any table, which
	// makes the layout width-dependent and forces a recompile when the
	// rendering width changes.
	HasTables bool
}

// Compile turns a markdown event stream into a styled document plus
// structural overlays. It never fails; unrecognized or malformed
// constructs degrade to literal text.
func Compile(events []Event, opts Options) Result {
	c := newCompiler(opts)
	for _, ev := range events {
		c.handleEvent(ev)
	}
	return c.finalize()
}

// CompileSource parses markdown source and compiles it in one step.
func CompileSource(source []byte, opts Options) Result {
	return Compile(Parse(source), opts)
}

type listState struct {
	ordered bool
	index   int
}

// compiler threads all traversal state through one value: the line
// accumulator, the style and list stacks, the blockquote depth, and the
// in-progress code block and table builder when active.
type compiler struct {
	styles        StyleSet
	maxTableWidth int

	lines      []core.Line
	current    []core.Span
	styleStack []core.Style
	listStack  []listState
	quoteDepth int

	inCodeBlock  bool
	codeStart    int
	codeLanguage string

	// lineStart gates prefix insertion; lastBlank tracks whether the
	// previously emitted line was a blank separator.
	lineStart bool
	lastBlank bool

	table     *tableBuilder
	sawTables bool

	headings   []overlay.Heading
	codeBlocks []overlay.CodeBlock
	rules      []overlay.Rule

	// pendingHeading holds the level of a heading whose text has not
	// been flushed yet; 0 means none.
	pendingHeading int
}

func newCompiler(opts Options) *compiler {
	width := opts.MaxTableWidth
	if width < 1 {
		width = DefaultMaxTableWidth
	}
	return &compiler{
		styles:        opts.Styles,
		maxTableWidth: width,
		styleStack:    []core.Style{core.DefaultStyle()},
		codeStart:     -1,
		lineStart:     true,
		lastBlank:     true,
	}
}

func (c *compiler) handleEvent(ev Event) {
	switch ev.Kind {
	case EventStart:
		c.startBlock(ev)
	case EventEnd:
		c.endBlock(ev)
	case EventText:
		if c.interceptText(ev.Text) {
			return
		}
		c.pushText(ev.Text)
	case EventCode:
		if c.cellActive() {
			c.table.pushCode(ev.Text)
			return
		}
		c.pushCodeSpan(ev.Text)
	case EventHTML:
		if c.interceptText(ev.Text) {
			return
		}
		c.pushText(ev.Text)
	case EventSoftBreak:
		if c.cellActive() {
			c.table.pushSoftBreak()
			return
		}
		c.flushLine(false)
	case EventHardBreak:
		if c.cellActive() {
			c.table.pushHardBreak()
			return
		}
		c.flushLine(true)
	case EventRule:
		c.pushRule()
	case EventFootnoteRef:
		c.pushMarker("[^" + ev.Text + "]")
	case EventTaskMarker:
		if ev.Checked {
			c.pushMarker("[x] ")
		} else {
			c.pushMarker("[ ] ")
		}
	}
}

// pushMarker routes pre-formatted marker text through the same cell
// interception as plain text.
func (c *compiler) pushMarker(text string) {
	if c.interceptText(text) {
		return
	}
	c.pushText(text)
}

// interceptText routes text into the active table cell when one is
// collecting, reporting whether it was consumed.
func (c *compiler) interceptText(text string) bool {
	if c.cellActive() {
		c.table.pushText(text)
		return true
	}
	return false
}

func (c *compiler) cellActive() bool {
	return c.table != nil && c.table.isCollecting()
}

func (c *compiler) startBlock(ev Event) {
	switch ev.Block {
	case BlockTable:
		c.ensureBlockGap()
		c.flushLine(false)
		c.table = newTableBuilder(ev.Alignments)
		c.sawTables = true
		return
	case BlockTableHead:
		if c.table != nil {
			c.table.startHead()
		}
		return
	case BlockTableRow:
		if c.table != nil {
			c.table.startRow()
		}
		return
	case BlockTableCell:
		if c.table != nil {
			c.table.startCell()
		}
		return
	}

	// Inline structure inside a table cell is flattened to plain text.
	if c.cellActive() {
		switch ev.Block {
		case BlockEmphasis, BlockStrong, BlockStrikethrough, BlockLink, BlockParagraph:
			return
		}
	}

	switch ev.Block {
	case BlockParagraph:
		c.ensureBlockGap()
	case BlockHeading:
		c.ensureBlockGap()
		c.pendingHeading = ev.Level
		c.pushStyle(c.styles.Heading(ev.Level))
	case BlockQuote:
		c.ensureBlockGap()
		c.quoteDepth++
		c.pushStyle(c.styles.Blockquote)
	case BlockList:
		index := 1
		if ev.Ordered {
			index = ev.Start
		}
		c.listStack = append(c.listStack, listState{ordered: ev.Ordered, index: index})
	case BlockListItem:
		c.startListItem()
	case BlockCodeBlock:
		c.startCodeBlock(ev.Language)
	case BlockEmphasis:
		c.pushStyle(c.currentStyle().Italic())
	case BlockStrong:
		c.pushStyle(c.currentStyle().Bold())
	case BlockStrikethrough:
		c.pushStyle(c.currentStyle().Strikethrough())
	case BlockLink:
		c.pushStyle(c.currentStyle().Merge(c.styles.Link))
	case BlockImage:
		c.ensureBlockGap()
		title := ev.Title
		if title == "" {
			title = "image"
		}
		c.pushText("![" + title + "](" + ev.Dest + ")")
		c.flushLine(false)
	case BlockFootnoteDef:
		c.ensureBlockGap()
		c.pushText("[^" + ev.Text + "]")
		c.flushLine(false)
	}
}

func (c *compiler) endBlock(ev Event) {
	switch ev.Block {
	case BlockTableCell:
		if c.table != nil {
			c.table.endCell()
		}
		return
	case BlockTableRow:
		if c.table != nil {
			c.table.endRow()
		}
		return
	case BlockTableHead:
		if c.table != nil {
			c.table.endHead()
		}
		return
	case BlockTable:
		c.flushLine(false)
		if c.table != nil {
			rendered := c.table.layout(c.maxTableWidth)
			c.table = nil
			if len(rendered) == 0 {
				rendered = []core.Line{core.PlainLine("(empty table)")}
			}
			c.lines = append(c.lines, rendered...)
			c.lastBlank = false
			c.pushBlankLine()
		}
		return
	}

	if c.cellActive() {
		switch ev.Block {
		case BlockEmphasis, BlockStrong, BlockStrikethrough, BlockLink, BlockParagraph:
			return
		}
	}

	switch ev.Block {
	case BlockParagraph:
		c.flushLine(false)
		c.pushBlankLine()
	case BlockHeading:
		c.flushLine(false)
		c.pushBlankLine()
		c.popStyle()
	case BlockQuote:
		c.flushLine(false)
		if c.quoteDepth > 0 {
			c.quoteDepth--
		}
		c.popStyle()
		c.pushBlankLine()
	case BlockList:
		c.flushLine(false)
		if n := len(c.listStack); n > 0 {
			c.listStack = c.listStack[:n-1]
		}
		c.pushBlankLine()
	case BlockListItem:
		c.flushLine(false)
	case BlockCodeBlock:
		c.flushLine(false)
		c.finishCodeBlock()
		c.popStyle()
		c.inCodeBlock = false
		c.pushBlankLine()
	case BlockEmphasis, BlockStrong, BlockStrikethrough, BlockLink:
		c.popStyle()
	case BlockImage, BlockFootnoteDef:
		// Label already emitted on the start event.
	}
}

// startListItem flushes any pending line and emits the item label:
// indentation by nesting depth, then either the next ordered index or
// the depth's bullet glyph.
func (c *compiler) startListItem() {
	c.flushLine(false)

	depth := len(c.listStack) - 1
	if depth < 0 {
		depth = 0
	}
	indent := strings.Repeat(" ", depth*2)

	label := indent + bulletGlyphs[depth%len(bulletGlyphs)] + " "
	if len(c.listStack) > 0 {
		state := &c.listStack[len(c.listStack)-1]
		if state.ordered {
			label = indent + strconv.Itoa(state.index) + ". "
			state.index++
		}
	}

	c.current = append(c.current, core.NewSpan(label, c.styles.ListLabel))
	c.lineStart = false
}

// startCodeBlock opens a code block: separator, pending line flushed,
// start index recorded, fence label trimmed, code style pushed.
func (c *compiler) startCodeBlock(language string) {
	c.ensureBlockGap()
	c.flushLine(false)
	c.codeLanguage = strings.TrimSpace(language)
	c.codeStart = len(c.lines)
	c.inCodeBlock = true
	c.pushStyle(c.styles.CodeBlock)
}

// finishCodeBlock records the block's overlay. A block that emitted no
// lines synthesizes one blank line so it is never zero-height.
func (c *compiler) finishCodeBlock() {
	start := c.codeStart
	c.codeStart = -1
	language := c.codeLanguage
	c.codeLanguage = ""

	if start < 0 || start > len(c.lines) {
		return
	}
	if start == len(c.lines) {
		c.lines = append(c.lines, core.BlankLine())
	}
	end := len(c.lines)
	if end > start {
		c.codeBlocks = append(c.codeBlocks, overlay.CodeBlock{
			LineStart: start,
			LineEnd:   end,
			Language:  language,
		})
	}
}

// pushText adds literal text under the current style. Inside a code
// block, embedded newlines split the text so each source line becomes
// one document line.
func (c *compiler) pushText(text string) {
	if text == "" {
		return
	}
	if c.inCodeBlock && strings.ContainsRune(text, '\n') {
		var segment strings.Builder
		for _, r := range text {
			if r == '\n' {
				c.pushTextSegment(segment.String())
				segment.Reset()
				c.flushLine(true)
			} else {
				segment.WriteRune(r)
			}
		}
		if segment.Len() > 0 {
			c.pushTextSegment(segment.String())
		}
		return
	}
	c.pushTextSegment(text)
}

func (c *compiler) pushTextSegment(text string) {
	if text == "" {
		return
	}
	if c.lineStart {
		c.insertPrefixes()
	}
	text = expandTabs(text, c.pendingWidth())
	c.current = append(c.current, core.NewSpan(text, c.currentStyle()))
	c.lastBlank = false
}

// pushCodeSpan emits an inline code span wrapped in literal backticks.
func (c *compiler) pushCodeSpan(text string) {
	if c.lineStart {
		c.insertPrefixes()
	}
	text = expandTabs(text, c.pendingWidth()+1)
	style := c.currentStyle().Merge(c.styles.InlineCode)
	c.current = append(c.current, core.NewSpan("`"+text+"`", style))
	c.lastBlank = false
}

// pendingWidth is the display width of the line accumulated so far.
func (c *compiler) pendingWidth() int {
	w := 0
	for _, span := range c.current {
		w += core.DisplayWidth(span.Text)
	}
	return w
}

// expandTabs replaces each tab with spaces up to the next tab stop,
// measured from the column the text will start at.
func expandTabs(text string, col int) string {
	if !strings.ContainsRune(text, '\t') {
		return text
	}
	var b strings.Builder
	for _, r := range text {
		if r == '\t' {
			n := tabStop - (col % tabStop)
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col += core.RuneWidth(r)
	}
	return b.String()
}

// insertPrefixes prepends the code indent and blockquote markers when a
// new line begins inside those constructs. Quote markers pick up the
// code background when both apply.
func (c *compiler) insertPrefixes() {
	if c.inCodeBlock {
		c.current = append(c.current, core.NewSpan(codeIndent, c.styles.CodeBlock))
	}
	if c.quoteDepth > 0 {
		style := c.styles.QuotePrefix
		if c.inCodeBlock {
			style = style.WithBackground(c.styles.CodeBlock.Background)
		}
		c.current = append(c.current, core.NewSpan(strings.Repeat("> ", c.quoteDepth), style))
	}
	c.lineStart = false
}

// pushRule reserves an empty document line for a horizontal rule. The
// glyphs are painted as an overlay, so the line itself stays empty but
// still counts as content for separator accounting.
func (c *compiler) pushRule() {
	c.ensureBlockGap()
	c.rules = append(c.rules, overlay.Rule{Line: len(c.lines)})
	c.lines = append(c.lines, core.BlankLine())
	c.lastBlank = false
	c.pushBlankLine()
}

// flushLine emits the accumulated spans as one document line. With no
// pending spans it emits a blank line only when allowEmpty is set. A
// pending heading is recorded against the flushed line's index.
func (c *compiler) flushLine(allowEmpty bool) {
	if len(c.current) == 0 {
		if allowEmpty {
			c.lines = append(c.lines, core.BlankLine())
			c.lastBlank = true
		}
	} else {
		c.lines = append(c.lines, core.Line{Spans: c.current})
		c.current = nil
		c.lastBlank = false
		if c.pendingHeading > 0 {
			c.headings = append(c.headings, overlay.Heading{
				Line:  len(c.lines) - 1,
				Level: c.pendingHeading,
			})
			c.pendingHeading = 0
		}
	}
	c.lineStart = true
}

// ensureBlockGap inserts one blank separator before a new block unless
// the document is empty or the previous line is already blank.
func (c *compiler) ensureBlockGap() {
	if len(c.lines) > 0 && !c.lastBlank {
		c.lines = append(c.lines, core.BlankLine())
		c.lastBlank = true
	}
}

// pushBlankLine appends a blank line unless the previous line is
// already blank, so separators never double up.
func (c *compiler) pushBlankLine() {
	if !c.lastBlank {
		c.lines = append(c.lines, core.BlankLine())
		c.lastBlank = true
	}
}

func (c *compiler) currentStyle() core.Style {
	return c.styleStack[len(c.styleStack)-1]
}

func (c *compiler) pushStyle(style core.Style) {
	c.styleStack = append(c.styleStack, style)
}

// popStyle restores the enclosing style. The base style is never
// popped, so unbalanced streams cannot underflow the stack.
func (c *compiler) popStyle() {
	if len(c.styleStack) > 1 {
		c.styleStack = c.styleStack[:len(c.styleStack)-1]
	}
}

// finalize flushes any line still accumulating at end of stream and
// seals the result. The trailing flush is unconditional and records no
// heading: a heading truncated mid-stream has no closing event, so its
// index was never determined.
func (c *compiler) finalize() Result {
	if len(c.current) > 0 {
		c.lines = append(c.lines, core.Line{Spans: c.current})
		c.current = nil
	}
	return Result{
		Document: core.Document(c.lines),
		Overlays: overlay.Set{
			Headings:   c.headings,
			CodeBlocks: c.codeBlocks,
			Rules:      c.rules,
		},
		HasTables: c.sawTables,
	}
}
