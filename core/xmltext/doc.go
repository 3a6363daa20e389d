// Package xmltext converts free-form XML-like text, as produced by a
// language model, into a nested key/value tree. Model output is frequently
// malformed, missing a declaration, or embedded in surrounding prose, so the
// package applies a layered recovery strategy, a structural decode first and
// then a best-effort tag scan, before giving up and returning nil.
//
// The main entry point is [Parse]. It never returns an error: any input it
// cannot make sense of yields nil, because the caller's only recourse is to
// ask the model again.
package xmltext
