package filler

import "strconv"

// name builds prefix + token + suffix + extension, where token is index in
// progressive mode and a fresh random token otherwise.
func (n Naming) name(index int, tokens TokenGenerator) string {
	token := strconv.Itoa(index)
	if !n.Progressive {
		token = tokens.Token(TokenLength)
	}
	return n.Prefix + token + n.Suffix + n.Extension
}
