package xmlcore

import (
	"fmt"
	"io"

	"github.com/agrison/xmlcore/internal/nsstack"
	"github.com/agrison/xmlcore/internal/strarena"
)

// predefined namespace bindings that can never be re-bound (spec §6.4).
const (
	xmlPrefix    = "xml"
	xmlNamespace = "http://www.w3.org/XML/1998/namespace"
	xmlnsPrefix  = "xmlns"
	xmlnsNS      = "http://www.w3.org/2000/xmlns/"
)

// Options configures a Writer. The zero value is compact (no
// pretty-printing) and not namespace-aware: NamespaceAware is false unless
// the caller sets it.
type Options struct {
	// Indent, when non-empty, is repeated once per nesting depth to
	// pretty-print structural boundaries. Empty means compact output.
	Indent string

	// NamespaceAware, when false, disallows the *NS methods and treats
	// names passed to ElementStart/Attribute as opaque strings.
	NamespaceAware bool
}

type wState uint8

const (
	wStart wState = iota
	wAfterBOM
	wAfterXMLDeclaration
	wElementStart
	wAfterStructureEnd
	wText
	wEnd
	wEOF
)

// Writer is a namespace-aware, state-driven XML emitter. It tracks
// element nesting, pending namespace declarations, auto-generated
// prefixes, and (optionally) pretty-print indentation, and writes
// directly to the supplied sink.
type Writer struct {
	sink io.Writer
	opts Options
	err  error

	state       wState
	hasOpened   bool
	names       *strarena.Arena
	nameOffsets []int
	ns          *nsstack.Stack
	pendingNS   map[string]string
	nsCounter   int
}

// NewWriter returns a Writer that emits to sink under opts.
func NewWriter(sink io.Writer, opts Options) *Writer {
	return &Writer{
		sink:  sink,
		opts:  opts,
		state: wStart,
		names: strarena.New(),
		ns:    nsstack.New(),
	}
}

// Depth returns the current element nesting depth.
func (w *Writer) Depth() int {
	return w.ns.Len()
}

func (w *Writer) fail(err error) error {
	w.err = err
	w.state = wEOF
	return err
}

// checkOpen reports ErrWriterClosed if the Writer has already latched
// (EOF or a prior contract violation), before any state-specific check
// runs.
func (w *Writer) checkOpen() error {
	if w.state == wEOF {
		return ErrWriterClosed
	}
	return nil
}

func (w *Writer) write(p []byte) error {
	if _, err := w.sink.Write(p); err != nil {
		return w.fail(err)
	}
	return nil
}

func (w *Writer) writeString(s string) error {
	if _, err := io.WriteString(w.sink, s); err != nil {
		return w.fail(err)
	}
	return nil
}

// closeOpenTag closes the currently open "<name ...attrs" with ">", if
// one is open. Pending namespace bindings are not written here; they are
// committed by elementStart on the element they belong to.
func (w *Writer) closeOpenTag() error {
	if w.state != wElementStart {
		return nil
	}
	return w.writeString(">")
}

// maybeIndent writes a newline plus Indent repeated depth times, if
// pretty-printing is enabled and the previous call wasn't inside text
// content (which suppresses indentation per §4.2.4).
func (w *Writer) maybeIndent(depth int) error {
	if w.opts.Indent == "" {
		return nil
	}
	if w.state == wStart || w.state == wAfterBOM {
		return nil
	}
	if w.state == wText {
		return nil
	}
	if err := w.writeString("\n"); err != nil {
		return err
	}
	for i := 0; i < depth; i++ {
		if err := w.writeString(w.opts.Indent); err != nil {
			return err
		}
	}
	return nil
}

// BOM writes a UTF-8 byte-order-mark. Only legal at the very start of the
// document.
func (w *Writer) BOM() error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	if w.state != wStart {
		return w.fail(ErrIllegalInState)
	}
	if err := w.write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return err
	}
	w.state = wAfterBOM
	return nil
}

// XMLDeclaration writes the XML prolog. encoding may be empty to omit the
// encoding attribute; standalone may be nil to omit the standalone
// attribute. Only legal before any content (state start or after_bom).
func (w *Writer) XMLDeclaration(encoding string, standalone *bool) error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	if w.state != wStart && w.state != wAfterBOM {
		return w.fail(ErrDeclarationTooLate)
	}
	if err := w.writeString(`<?xml version="1.0"`); err != nil {
		return err
	}
	if encoding != "" {
		if err := w.writeString(fmt.Sprintf(` encoding="%s"`, encoding)); err != nil {
			return err
		}
	}
	if standalone != nil {
		v := "no"
		if *standalone {
			v = "yes"
		}
		if err := w.writeString(fmt.Sprintf(` standalone="%s"`, v)); err != nil {
			return err
		}
	}
	if err := w.writeString("?>"); err != nil {
		return err
	}
	w.state = wAfterXMLDeclaration
	return nil
}

func (w *Writer) canStartElement() bool {
	switch w.state {
	case wAfterXMLDeclaration, wAfterStructureEnd, wText, wElementStart:
		return true
	case wStart, wAfterBOM:
		return true
	}
	return false
}

// ElementStart opens a new element named name, treated as an opaque
// string (namespace prefixes, if any, are the caller's responsibility).
func (w *Writer) ElementStart(name string) error {
	return w.elementStart(name)
}

// ElementStartNS opens a new element in namespace ns with local name
// local, resolving ns to a prefix per §4.2.3 (predefined bindings,
// pending declarations, the open frame stack, or a freshly generated
// "nsN" prefix staged for commit on this call).
func (w *Writer) ElementStartNS(ns, local string) error {
	if !w.opts.NamespaceAware {
		return w.fail(ErrNotNamespaceAware)
	}
	prefix, err := w.resolveNamespace(ns)
	if err != nil {
		return w.fail(err)
	}
	return w.elementStart(prefix + ":" + local)
}

func (w *Writer) elementStart(qname string) error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	if !w.canStartElement() {
		return w.fail(ErrIllegalInState)
	}
	depth := w.ns.Len()
	if err := w.closeOpenTag(); err != nil {
		return err
	}
	if err := w.maybeIndent(depth); err != nil {
		return err
	}
	if err := w.writeString("<" + qname); err != nil {
		return err
	}

	w.ns.Push()
	off := w.names.Put(qname)
	w.nameOffsets = append(w.nameOffsets, off)
	w.hasOpened = true

	for prefix, uri := range w.pendingNS {
		if err := w.writeNSDecl(prefix, uri); err != nil {
			return err
		}
		w.ns.Bind(prefix, uri)
	}
	w.pendingNS = nil

	w.state = wElementStart
	return nil
}

func (w *Writer) writeNSDecl(prefix, uri string) error {
	if prefix == "" {
		return w.writeString(fmt.Sprintf(` xmlns="%s"`, escapeAttr(uri)))
	}
	return w.writeString(fmt.Sprintf(` xmlns:%s="%s"`, prefix, escapeAttr(uri)))
}

// resolveNamespace finds or allocates a prefix for ns, per §4.2.3's
// lookup order: predefined bindings, pending_ns, then the frame stack,
// finally minting a fresh generated prefix staged in pending_ns.
func (w *Writer) resolveNamespace(ns string) (string, error) {
	if ns == "" {
		return "", ErrEmptyNamespace
	}
	if ns == xmlNamespace {
		return xmlPrefix, nil
	}
	if w.pendingNS != nil {
		for p, u := range w.pendingNS {
			if u == ns {
				return p, nil
			}
		}
	}
	if p, ok := w.ns.LookupPrefix(ns); ok {
		return p, nil
	}
	for {
		candidate := fmt.Sprintf("ns%d", w.nsCounter)
		w.nsCounter++
		if _, staged := w.pendingNS[candidate]; staged {
			continue
		}
		if w.ns.HasPrefix(candidate) {
			continue
		}
		if w.pendingNS == nil {
			w.pendingNS = make(map[string]string, 1)
		}
		w.pendingNS[candidate] = ns
		return candidate, nil
	}
}

// Attribute writes name="value" on the currently open element, treated
// as opaque unless name is "xmlns" or begins with "xmlns:", in which case
// it registers a namespace binding in the current frame per §4.2.3.
func (w *Writer) Attribute(name, value string) error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	if w.state != wElementStart {
		return w.fail(ErrIllegalInState)
	}
	if w.opts.NamespaceAware {
		if name == "xmlns" {
			w.ns.Bind("", value)
			return w.writeString(fmt.Sprintf(` xmlns="%s"`, escapeAttr(value)))
		}
		if len(name) > 6 && name[:6] == "xmlns:" {
			prefix := name[6:]
			w.ns.Bind(prefix, value)
			return w.writeString(fmt.Sprintf(` xmlns:%s="%s"`, prefix, escapeAttr(value)))
		}
	}
	return w.writeString(fmt.Sprintf(` %s="%s"`, name, escapeAttr(value)))
}

// AttributeNS writes a namespace-qualified attribute, or (if ns is the
// reserved xmlns namespace) registers local as a prefix bound to value.
func (w *Writer) AttributeNS(ns, local, value string) error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	if w.state != wElementStart {
		return w.fail(ErrIllegalInState)
	}
	if !w.opts.NamespaceAware {
		return w.fail(ErrNotNamespaceAware)
	}
	if ns == xmlnsNS {
		w.ns.Bind(local, value)
		return w.writeNSDecl(local, value)
	}
	prefix, err := w.resolveNamespace(ns)
	if err != nil {
		return w.fail(err)
	}
	for p, u := range w.pendingNS {
		if p == prefix {
			if werr := w.writeNSDecl(p, u); werr != nil {
				return werr
			}
			w.ns.Bind(p, u)
			delete(w.pendingNS, p)
		}
	}
	return w.writeString(fmt.Sprintf(` %s:%s="%s"`, prefix, local, escapeAttr(value)))
}

func (w *Writer) closeElement(selfClose bool) error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	if w.ns.Len() == 0 {
		return w.fail(ErrNoOpenElement)
	}
	switch w.state {
	case wElementStart, wAfterStructureEnd, wText:
	default:
		return w.fail(ErrIllegalInState)
	}

	depth := w.ns.Len()
	off := w.nameOffsets[len(w.nameOffsets)-1]
	qname := w.names.Get(off)

	if selfClose {
		if w.state != wElementStart {
			return w.fail(ErrIllegalInState)
		}
		if err := w.writeString("/>"); err != nil {
			return err
		}
	} else {
		if w.state == wElementStart {
			if err := w.writeString(">"); err != nil {
				return err
			}
		} else {
			if err := w.maybeIndent(depth - 1); err != nil {
				return err
			}
		}
		if err := w.writeString("</" + qname + ">"); err != nil {
			return err
		}
	}

	w.nameOffsets = w.nameOffsets[:len(w.nameOffsets)-1]
	w.names.Truncate(off)
	w.ns.Pop()
	w.pendingNS = nil

	if w.ns.Len() == 0 {
		w.state = wEnd
	} else {
		w.state = wAfterStructureEnd
	}
	return nil
}

// ElementEnd closes the innermost open element with a full "</name>"
// closing tag.
func (w *Writer) ElementEnd() error {
	return w.closeElement(false)
}

// ElementEndEmpty closes the innermost open element with "/>", only
// legal immediately after ElementStart/ElementStartNS and its attributes,
// before any content has been written.
func (w *Writer) ElementEndEmpty() error {
	return w.closeElement(true)
}

func (w *Writer) enterTextContent() error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	switch w.state {
	case wElementStart:
		if err := w.writeString(">"); err != nil {
			return err
		}
	case wAfterStructureEnd, wText:
	default:
		return w.fail(ErrIllegalInState)
	}
	if w.ns.Len() == 0 {
		return w.fail(ErrNoOpenElement)
	}
	w.state = wText
	return nil
}

// Text writes s as escaped element character data.
func (w *Writer) Text(s string) error {
	if err := w.enterTextContent(); err != nil {
		return err
	}
	return w.writeString(escapeText(s))
}

// CDATA writes s as a literal CDATA section. The caller guarantees s does
// not contain "]]>".
func (w *Writer) CDATA(s string) error {
	if err := w.enterTextContent(); err != nil {
		return err
	}
	if err := w.writeString("<![CDATA["); err != nil {
		return err
	}
	if err := w.writeString(s); err != nil {
		return err
	}
	return w.writeString("]]>")
}

// CharacterReference writes a numeric character reference &#xHEX; in
// uppercase hex.
func (w *Writer) CharacterReference(r rune) error {
	if err := w.enterTextContent(); err != nil {
		return err
	}
	return w.writeString(fmt.Sprintf("&#x%X;", r))
}

// EntityReference writes a named entity reference &name;.
func (w *Writer) EntityReference(name string) error {
	if err := w.enterTextContent(); err != nil {
		return err
	}
	return w.writeString("&" + name + ";")
}

func (w *Writer) canWriteMisc() bool {
	switch w.state {
	case wStart, wAfterBOM, wAfterXMLDeclaration, wElementStart, wAfterStructureEnd, wText, wEnd:
		return true
	}
	return false
}

// Comment writes <!--s--> raw. The caller guarantees s does not contain
// "--" or end with "-".
func (w *Writer) Comment(s string) error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	if !w.canWriteMisc() {
		return w.fail(ErrIllegalInState)
	}
	depth := w.ns.Len()
	if err := w.closeOpenTag(); err != nil {
		return err
	}
	if w.state == wElementStart {
		w.state = wAfterStructureEnd
	}
	if err := w.maybeIndent(depth); err != nil {
		return err
	}
	if err := w.writeString("<!--" + s + "-->"); err != nil {
		return err
	}
	if w.ns.Len() == 0 {
		if w.hasOpened {
			w.state = wEnd
		} else {
			w.state = wAfterXMLDeclaration
		}
	} else {
		w.state = wAfterStructureEnd
	}
	return nil
}

// PI writes <?target data?> raw, omitting the leading space when data is
// empty.
func (w *Writer) PI(target, data string) error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	if !w.canWriteMisc() {
		return w.fail(ErrIllegalInState)
	}
	depth := w.ns.Len()
	if err := w.closeOpenTag(); err != nil {
		return err
	}
	if w.state == wElementStart {
		w.state = wAfterStructureEnd
	}
	if err := w.maybeIndent(depth); err != nil {
		return err
	}
	s := "<?" + target
	if data != "" {
		s += " " + data
	}
	s += "?>"
	if err := w.writeString(s); err != nil {
		return err
	}
	if w.ns.Len() == 0 {
		if w.hasOpened {
			w.state = wEnd
		} else {
			w.state = wAfterXMLDeclaration
		}
	} else {
		w.state = wAfterStructureEnd
	}
	return nil
}

// Embed splices a pre-serialized, well-formed XML fragment verbatim. No
// validation is performed; the caller is responsible for the fragment's
// correctness and for keeping the Writer's depth/namespace bookkeeping
// meaningful afterward.
func (w *Writer) Embed(raw []byte) error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	if err := w.closeOpenTag(); err != nil {
		return err
	}
	if err := w.write(raw); err != nil {
		return err
	}
	if w.state == wElementStart {
		w.state = wAfterStructureEnd
	}
	return nil
}

// BindNS stages prefix -> ns for the next ElementStart/ElementStartNS
// call, or (if an element's opening tag is currently being written)
// emits it immediately as an xmlns[:prefix] attribute on that element.
func (w *Writer) BindNS(prefix, ns string) error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	if !w.opts.NamespaceAware {
		return w.fail(ErrNotNamespaceAware)
	}
	if w.state == wElementStart {
		if err := w.writeNSDecl(prefix, ns); err != nil {
			return err
		}
		w.ns.Bind(prefix, ns)
		return nil
	}
	if w.pendingNS == nil {
		w.pendingNS = make(map[string]string, 1)
	}
	w.pendingNS[prefix] = ns
	return nil
}

// EOF finalizes the document. Only legal once the root element has
// closed; latches the Writer so every later call fails.
func (w *Writer) EOF() error {
	if err := w.checkOpen(); err != nil {
		return err
	}
	if w.state != wEnd {
		return w.fail(ErrEOFNotReady)
	}
	if w.opts.Indent != "" {
		if err := w.writeString("\n"); err != nil {
			return err
		}
	}
	w.state = wEOF
	return nil
}

func escapeAttr(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '&':
			out = append(out, "&amp;"...)
		case '<':
			out = append(out, "&lt;"...)
		case '"':
			out = append(out, "&quot;"...)
		case '\t':
			out = append(out, "&#x9;"...)
		case '\n':
			out = append(out, "&#xA;"...)
		case '\r':
			out = append(out, "&#xD;"...)
		default:
			out = append(out, c)
		}
	}
	return string(out)
}

func escapeText(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '&':
			out = append(out, "&amp;"...)
		case '<':
			out = append(out, "&lt;"...)
		case '\r':
			out = append(out, "&#xD;"...)
		default:
			out = append(out, c)
		}
	}
	return string(out)
}
