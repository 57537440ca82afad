package token

// Balance checks that braces and brackets in toks nest properly.  The
// returned slice maps the index of every opening token to the index of its
// closing token; entries for other tokens are -1.
func Balance(toks []Token) ([]int, error) {
	match := make([]int, len(toks))
	stack := make([]int, 0, 16)
	for i := range toks {
		match[i] = -1
		t := &toks[i]
		switch t.Type {
		case TLCurl, TLSquare:
			stack = append(stack, i)
		case TRCurl, TRSquare:
			if len(stack) == 0 {
				return nil, &ErrImbalancedStructure{Close: t}
			}
			oi := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			open := &toks[oi]
			if (open.Type == TLCurl) != (t.Type == TRCurl) {
				return nil, &ErrImbalancedStructure{Open: open, Close: t}
			}
			match[oi] = i
		}
	}
	if len(stack) != 0 {
		return nil, &ErrImbalancedStructure{Open: &toks[stack[len(stack)-1]]}
	}
	return match, nil
}
