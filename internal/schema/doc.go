// Package schema parses introspection XML into ordered interface
// descriptors.
//
// The expected document shape is a root element containing <node>
// children; each node carries a name attribute and exactly one
// <interface> element, which in turn holds <method> and <signal>
// members with <arg> children. Anything else at the top level is
// skipped. Before the descriptors are returned, interfaces are sorted
// case-sensitively by name so repeated runs over the same schema are
// byte-for-byte reproducible downstream.
package schema
