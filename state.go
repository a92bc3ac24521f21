package xmlcore

// state enumerates the Scanner's state_tag values, grouped into the five
// families described in the lexical design: document-level, XML
// declaration, PI/comment/CDATA/DOCTYPE, element/attribute, and the
// terminal error state.
type state uint8

const (
	// document level
	sStart state = iota
	sAfterBOM
	sPrelude
	sDocumentContent
	sUnknownStart

	// element names and structure
	sElementStartName
	sElementStartAfterName
	sElementEmptySlash
	sContentLT
	sElementEndNameStart
	sElementEndName
	sElementEndAfterName

	// attributes
	sAttrName
	sAttrAfterName
	sAttrAfterEquals
	sAttrContent
	sAttrRefAmp
	sAttrNumRefStart
	sAttrDecRef
	sAttrHexRef
	sAttrEntityRefName

	// element content
	sContent
	sContentRefAmp
	sContentNumRefStart
	sContentDecRef
	sContentHexRef
	sContentEntityRefName

	// bang dispatch: comments, DOCTYPE, CDATA
	sBangAfterExclam
	sCommentDash
	sCommentContent
	sCommentMaybeEnd
	sCommentMaybeEnd2
	sDoctypeKeyword
	sDoctypeReject
	sCDATAKeyword
	sCDATAContent

	// processing instructions
	sPIAfterQuestion
	sPIMaybeXML1
	sPIMaybeXML2
	sPIMaybeXML3
	sPITargetName
	sPIAfterTargetSpace
	sPIContent
	sPIMaybeEnd

	// XML declaration
	sDeclBeforeVersion
	sDeclVersionKeyword
	sDeclVersionEq
	sDeclVersionQuote
	sDeclVersionMajor
	sDeclVersionDot
	sDeclVersionMinorFirst
	sDeclVersionMinor
	sDeclAfterVersion
	sDeclEncodingKeyword
	sDeclEncodingEq
	sDeclEncodingQuote
	sDeclEncodingFirst
	sDeclEncodingChars
	sDeclAfterEncoding
	sDeclStandaloneKeyword
	sDeclStandaloneEq
	sDeclStandaloneQuote
	sDeclStandaloneYN
	sDeclStandaloneKeyword2
	sDeclAfterStandalone
	sDeclFinalGT

	// terminal
	sError
)
