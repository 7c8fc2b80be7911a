// Package intern maps identifier text to dense integer symbols.
package intern

import "fmt"

// Symbol is an interned identifier. Equal text always yields an equal Symbol.
type Symbol uint32

// Interner owns the symbol table. Symbols stay valid for the life of the
// Interner. An Interner is not safe for concurrent use.
type Interner struct {
	ids   map[string]Symbol
	names []string
}

// New returns an empty Interner.
func New() *Interner {
	return &Interner{ids: make(map[string]Symbol)}
}

// Intern returns the symbol for text, adding it on first use.
func (in *Interner) Intern(text string) Symbol {
	if sym, ok := in.ids[text]; ok {
		return sym
	}
	sym := Symbol(len(in.names))
	in.names = append(in.names, text)
	in.ids[text] = sym
	return sym
}

// Lookup returns the symbol for text without interning it.
func (in *Interner) Lookup(text string) (Symbol, bool) {
	sym, ok := in.ids[text]
	return sym, ok
}

// Resolve returns the text of sym. It panics on a symbol this Interner never issued.
func (in *Interner) Resolve(sym Symbol) string {
	if int(sym) >= len(in.names) {
		panic(fmt.Sprintf("intern: unknown symbol %d", sym))
	}
	return in.names[sym]
}

// Len returns the number of distinct symbols.
func (in *Interner) Len() int {
	return len(in.names)
}
