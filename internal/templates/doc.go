// Package templates loads a theme's HTML fragments and renders them by literal
// placeholder substitution.
//
// A fragment is plain HTML with named slots written as {{ name }}. There are no
// conditionals or loops: repetition is done by the caller rendering a fragment
// once per item and concatenating the results. Each fragment kind declares the
// closed set of slots it may use; a slot outside that set is rejected when the
// theme is loaded, and a slot left without a binding is rejected when rendered.
package templates
