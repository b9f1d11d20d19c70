// SGI FREE SOFTWARE LICENSE B (Version 2.0, Sept. 18, 2008)
// Copyright (C) [dates of first publication] Silicon Graphics, Inc.
// All Rights Reserved.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
// of the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice including the dates of first publication and either this
// permission notice or a reference to http://oss.sgi.com/projects/FreeB/ shall be
// included in all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR IMPLIED,
// INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS FOR A
// PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL SILICON GRAPHICS, INC.
// BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT,
// TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE
// OR OTHER DEALINGS IN THE SOFTWARE.
//
// Except as contained in this notice, the name of Silicon Graphics, Inc. shall not
// be used in advertising or otherwise to promote the sale, use or other dealings in
// this Software without prior written authorization from Silicon Graphics, Inc.

package polymesh

// dictNode holds one downward ring edge crossing the sweep line together
// with its helper, the most recent point that sees the edge from the right.
type dictNode struct {
	key    *halfEdge
	helper *polygonPoint
	prev   *dictNode
	next   *dictNode
}

// dict is the sweep status. The list is kept unordered: lookups walk it
// and measure every edge at the event height.
type dict struct {
	head    dictNode
	rotated bool
}

func dictNewDict(rotated bool) *dict {
	d := &dict{
		rotated: rotated,
	}
	d.head.next = &d.head
	d.head.prev = &d.head
	return d
}

func dictInsert(d *dict, key *halfEdge, helper *polygonPoint) *dictNode {
	n := &d.head
	nn := &dictNode{
		key:    key,
		helper: helper,
		next:   n,
		prev:   n.prev,
	}
	n.prev.next = nn
	n.prev = nn
	return nn
}

func dictDelete(n *dictNode) {
	assert(n.key != nil)
	n.next.prev = n.prev
	n.prev.next = n.next
}

// dictSearch returns the node whose key is e. If there is no such node,
// returns the head, whose key is nil.
func dictSearch(d *dict, e *halfEdge) *dictNode {
	n := &d.head
	for {
		n = n.next
		if n.key == nil || n.key == e {
			break
		}
	}
	return n
}

// dictSearchLeft returns the node of the edge directly to the left of p:
// among the edges crossing p's sweep line at or left of p, the one with
// the largest crossing. If there is none, returns the head.
func dictSearchLeft(d *dict, p *polygonPoint) *dictNode {
	c := p.at(d.rotated)
	best := &d.head
	bestX := 0.0
	for n := d.head.next; n != &d.head; n = n.next {
		u := n.key.org.at(d.rotated)
		w := n.key.dst().at(d.rotated)
		x := edgeEvalX(u, w, c.Y)
		if x > c.X+sweepEpsilon {
			continue
		}
		if best.key == nil || x > bestX {
			best = n
			bestX = x
		}
	}
	return best
}

func dictIsEmpty(d *dict) bool {
	return d.head.next == &d.head
}
