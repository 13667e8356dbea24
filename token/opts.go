package token

type tokenOpts struct {
	include        [numNodeTypes]bool
	alwaysTagClose bool
	noEmptyText    bool
	readSize       int
}

type TokenOpt func(*tokenOpts)

func newTokenOpts(opts []TokenOpt) *tokenOpts {
	o := &tokenOpts{readSize: defaultReadSize}
	for i := range o.include {
		o.include[i] = true
	}
	o.include[TDecl] = false
	for _, f := range opts {
		f(o)
	}
	return o
}

// Include restricts emission to the given node types. The default is to emit
// every type. Filtering does not change tag bookkeeping: excluded tags still
// open and close scopes.
func Include(types ...NodeType) TokenOpt {
	return func(o *tokenOpts) {
		var inc [numNodeTypes]bool
		for _, nt := range types {
			if nt >= 0 && nt < numNodeTypes {
				inc[nt] = true
			}
		}
		inc[TDecl] = false
		o.include = inc
	}
}

// AlwaysTagClose emits a synthetic TTagClose immediately after each
// self-closing TTagOpen, when TTagClose is included.
func AlwaysTagClose() TokenOpt {
	return func(o *tokenOpts) { o.alwaysTagClose = true }
}

// NoEmptyText suppresses TText events whose content is empty or all
// whitespace.
func NoEmptyText() TokenOpt {
	return func(o *tokenOpts) { o.noEmptyText = true }
}

// ReadSize sets the read buffer size for streaming mode.
func ReadSize(n int) TokenOpt {
	return func(o *tokenOpts) {
		if n > 0 {
			o.readSize = n
		}
	}
}
