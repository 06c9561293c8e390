// Package docxtpl fills placeholder tokens in DOCX templates. It unpacks the
// zip container, substitutes {{KEY}} occurrences in the textual parts under
// word/ (tolerating markup fragments the host editor may have injected inside
// a token), and repacks a valid container. Opaque parts pass through
// byte-identical.
package docxtpl
