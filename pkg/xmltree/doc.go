// Package xmltree converts parsed XML documents into a generic tree of
// named child groups.
//
// A tag that occurs once under its parent is stored as a group of kind One;
// the second occurrence of the same tag promotes the group to Many. The kind
// is fixed when the tree is built, so callers that need a sequence use
// Group.All and never inspect the shape themselves.
package xmltree
