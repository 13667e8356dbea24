// Package token provides incremental, event-driven tokenization of XML-like
// markup.
//
// [Tokenize] is a function for tokenizing a complete document held in memory.
//
// [Tokenizer] provides streaming tokenization from an io.Reader. Input may
// arrive in arbitrarily sized chunks; the event stream is identical no matter
// how the input was chunked. Events are produced one at a time on demand, so
// a slow consumer stalls the tokenizer rather than growing a buffer.
//
// The tokenizer is a strict lexer: attribute strings are handed out raw (see
// the attr package), DOCTYPE declarations are rejected, and well-formedness
// violations terminate the run.
package token
