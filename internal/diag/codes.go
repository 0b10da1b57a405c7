package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003

	// Validation (backend compiler stages)
	ValInfo     Code = 3000
	ValTokenize Code = 3001
	ValParse    Code = 3002
	ValLower    Code = 3003
	ValCompile  Code = 3004

	// Anchors the structural passes depend on
	AnchorInfo       Code = 4000
	AnchorNoEntry    Code = 4001
	AnchorNoCoord    Code = 4002
	AnchorNoReturn   Code = 4003
	AnchorNoBody     Code = 4004
	AnchorUnbalanced Code = 4005
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	ValInfo:                     "Validation information",
	ValTokenize:                 "Shader tokenization failed",
	ValParse:                    "Shader parse failed",
	ValLower:                    "Shader lowering failed",
	ValCompile:                  "Shader compilation failed",
	AnchorInfo:                  "Anchor information",
	AnchorNoEntry:               "Entry function not found",
	AnchorNoCoord:               "Coordinate parameter not found",
	AnchorNoReturn:              "Return statement not found",
	AnchorNoBody:                "Entry function body not found",
	AnchorUnbalanced:            "Unbalanced delimiters",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("VAL%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("ANC%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
