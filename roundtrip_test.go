package xmlcore

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// replay drives a fresh Scanner over input one ASCII codepoint at a time and translates each token
// it emits into the matching Writer call, verifying the Scanner/Writer
// pair agree on what a document means well enough to reproduce it
// byte-for-byte when the input contains no constructs (CDATA, character
// references) whose serialized form legitimately differs from its source
// text.
func replay(t *testing.T, input string, w *Writer) {
	t.Helper()
	sc := NewScanner()
	var attrName string
	var attrValue strings.Builder
	var piTarget string

	flushAttr := func(tok Token) {
		switch tok.Content.Kind {
		case ContentText:
			attrValue.WriteString(tok.Content.Text.String([]byte(input)))
		case ContentCodepoint:
			attrValue.WriteRune(tok.Content.Codepoint)
		case ContentEntity:
			attrValue.WriteString("&" + tok.Content.Entity.String([]byte(input)) + ";")
		}
		if tok.Final {
			require.NoError(t, w.Attribute(attrName, attrValue.String()))
			attrValue.Reset()
		}
	}

	buf := []byte(input)
	for i := 0; i < len(buf); i++ {
		tok, err := sc.Next(rune(buf[i]), 1)
		require.NoError(t, err)
		switch tok.Kind {
		case TokenOK, TokenCommentStart:
			// comment_start carries no data; the Writer call happens on
			// comment_content once the full text is known.
		case TokenXMLDeclaration:
			enc := ""
			if tok.HasEncoding {
				enc = tok.Encoding.String(buf)
			}
			var standalone *bool
			if tok.HasStandalone {
				standalone = &tok.Standalone
			}
			require.NoError(t, w.XMLDeclaration(enc, standalone))
		case TokenElementStart:
			require.NoError(t, w.ElementStart(tok.Name.String(buf)))
		case TokenAttributeStart:
			attrName = tok.Name.String(buf)
			attrValue.Reset()
		case TokenAttributeContent:
			flushAttr(tok)
		case TokenElementContent:
			switch tok.Content.Kind {
			case ContentText:
				require.NoError(t, w.Text(tok.Content.Text.String(buf)))
			case ContentCodepoint:
				require.NoError(t, w.CharacterReference(tok.Content.Codepoint))
			case ContentEntity:
				require.NoError(t, w.EntityReference(tok.Content.Entity.String(buf)))
			}
		case TokenElementEnd:
			require.NoError(t, w.ElementEnd())
		case TokenElementEndEmpty:
			require.NoError(t, w.ElementEndEmpty())
		case TokenCommentContent:
			require.NoError(t, w.Comment(tok.Raw.String(buf)))
		case TokenPIStart:
			piTarget = tok.Target.String(buf)
		case TokenPIContent:
			require.NoError(t, w.PI(piTarget, tok.Raw.String(buf)))
		}
	}
	require.NoError(t, sc.EndInput())
}

func TestRoundTrip_DeclarationCommentElementsTextPI(t *testing.T) {
	input := `<?xml version="1.0" encoding="UTF-8"?><!--note--><root a="1" b="two">` +
		`<child>hello world</child><?pi data?><child/></root>`

	var out bytes.Buffer
	w := NewWriter(&out, Options{})
	replay(t, input, w)
	require.NoError(t, w.EOF())

	require.Equal(t, input, out.String())
}

func TestRoundTrip_NamedEntityPreservedLiterally(t *testing.T) {
	input := `<e>a &amp; b</e>`

	var out bytes.Buffer
	w := NewWriter(&out, Options{})
	replay(t, input, w)
	require.NoError(t, w.EOF())

	require.Equal(t, input, out.String())
}

func TestRoundTrip_NestedSelfClosingElements(t *testing.T) {
	input := `<a><b/><c><d/></c></a>`

	var out bytes.Buffer
	w := NewWriter(&out, Options{})
	replay(t, input, w)
	require.NoError(t, w.EOF())

	require.Equal(t, input, out.String())
}
