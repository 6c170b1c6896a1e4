package form

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Namespaces that appear in a DD 2977 datasets packet, with the prefixes
// Designer writes them under.
const (
	xfaDataNS = "http://www.xfa.org/schema/xfa-data/1.0/"
	xfaDDNS   = "http://ns.adobe.com/data-description/"
)

var nsPrefixes = map[string]string{
	xfaDataNS: "xfa",
	xfaDDNS:   "dd",
}

// xmlNode is one element of the datasets tree. Children keep document
// order; Text only carries meaning on leaves.
type xmlNode struct {
	Name     xml.Name
	Attr     []xml.Attr
	Children []*xmlNode
	Text     string
}

// parseXMLTree decodes an XML document into a node tree, dropping xmlns
// declarations (they are reconstructed on serialization) and everything
// outside the root element.
func parseXMLTree(data []byte) (*xmlNode, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = false

	var root *xmlNode
	var stack []*xmlNode

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse datasets xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &xmlNode{Name: t.Name}
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
					continue
				}
				n.Attr = append(n.Attr, a)
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("parse datasets xml: multiple root elements")
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}

		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("parse datasets xml: no root element")
	}
	return root, nil
}

// child returns the first direct child with the given local name, or nil.
func (n *xmlNode) child(local string) *xmlNode {
	for _, c := range n.Children {
		if c.Name.Local == local {
			return c
		}
	}
	return nil
}

// path descends through direct children by local name.
func (n *xmlNode) path(locals ...string) *xmlNode {
	cur := n
	for _, l := range locals {
		if cur = cur.child(l); cur == nil {
			return nil
		}
	}
	return cur
}

// setText replaces a leaf's text content. Nodes with element children are
// left alone: only leaf text is ever rewritten.
func (n *xmlNode) setText(s string) {
	if len(n.Children) > 0 {
		return
	}
	n.Text = s
}

// clone deep-copies a node and its subtree.
func (n *xmlNode) clone() *xmlNode {
	c := &xmlNode{Name: n.Name, Text: n.Text}
	c.Attr = append(c.Attr, n.Attr...)
	for _, k := range n.Children {
		c.Children = append(c.Children, k.clone())
	}
	return c
}

// removeChildren drops every direct child with the given local name.
func (n *xmlNode) removeChildren(local string) {
	kept := n.Children[:0]
	for _, c := range n.Children {
		if c.Name.Local != local {
			kept = append(kept, c)
		}
	}
	n.Children = kept
}

// serializeXMLTree writes the tree back to bytes. Known namespaces come out
// under their canonical prefixes, declared once on the root element, so the
// packet keeps the shape XFA viewers expect.
func serializeXMLTree(root *xmlNode) []byte {
	var b bytes.Buffer
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	b.WriteByte('\n')

	declared := map[string]bool{}
	collectNamespaces(root, declared)
	writeNode(&b, root, declared)
	return b.Bytes()
}

func collectNamespaces(n *xmlNode, used map[string]bool) {
	if n.Name.Space != "" {
		used[n.Name.Space] = true
	}
	for _, a := range n.Attr {
		if a.Name.Space != "" {
			used[a.Name.Space] = true
		}
	}
	for _, c := range n.Children {
		collectNamespaces(c, used)
	}
}

func writeNode(b *bytes.Buffer, n *xmlNode, declare map[string]bool) {
	tag := qualifiedName(n.Name)
	b.WriteByte('<')
	b.WriteString(tag)

	if declare != nil {
		for ns := range nsPrefixes {
			if declare[ns] {
				fmt.Fprintf(b, ` xmlns:%s="%s"`, nsPrefixes[ns], ns)
			}
		}
	}

	for _, a := range n.Attr {
		b.WriteByte(' ')
		b.WriteString(qualifiedName(a.Name))
		b.WriteString(`="`)
		_ = xml.EscapeText(b, []byte(a.Value))
		b.WriteByte('"')
	}

	if len(n.Children) == 0 && strings.TrimSpace(n.Text) == "" {
		b.WriteString("/>")
		return
	}

	b.WriteByte('>')
	if len(n.Children) > 0 {
		for _, c := range n.Children {
			writeNode(b, c, nil)
		}
	} else {
		_ = xml.EscapeText(b, []byte(n.Text))
	}
	b.WriteString("</")
	b.WriteString(tag)
	b.WriteByte('>')
}

func qualifiedName(name xml.Name) string {
	if p, ok := nsPrefixes[name.Space]; ok {
		return p + ":" + name.Local
	}
	return name.Local
}
