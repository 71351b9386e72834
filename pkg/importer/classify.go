package importer

import (
	"strconv"
	"strings"
)

// TokenKind classifies one command-line token.
type TokenKind int

const (
	// TokenMass overrides the target total mass.
	TokenMass TokenKind = iota
	// TokenJointFile replaces the joint offset sequence.
	TokenJointFile
	// TokenMesh is a mesh (or scripted solid) input path.
	TokenMesh
)

// Token is a classified command-line token.
type Token struct {
	Kind  TokenKind
	Value float64 // target mass, set when Kind == TokenMass
}

// jointFileExt marks joint transformation info files.
const jointFileExt = ".txt"

// Classify assigns a token its role by trial parse: a token that parses
// entirely as a positive number is a mass override, a token with the
// joint-file extension is a joint file, anything else is a mesh path.
func Classify(token string) Token {
	if v, err := strconv.ParseFloat(token, 64); err == nil && v > 0 {
		return Token{Kind: TokenMass, Value: v}
	}
	if strings.HasSuffix(strings.ToLower(token), jointFileExt) {
		return Token{Kind: TokenJointFile}
	}
	return Token{Kind: TokenMesh}
}
