// comorbid: Comorbidity Classification and Scoring Library
// Copyright (c) 2022 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/ExaScience/ptra/blob/master/LICENSE.txt>.

package taxonomy

import "sort"

// trie indexes category prefixes by code bytes so a code is classified in O(len(code)).
type trie struct {
	root *trieNode
}

type trieNode struct {
	children map[byte]*trieNode
	category int // -1 if no prefix ends here
}

type collision struct {
	prefix        string
	winner, loser int
	nested        bool
}

func newTrieNode() *trieNode {
	return &trieNode{category: -1}
}

func newTrie() *trie {
	return &trie{root: newTrieNode()}
}

// insert adds prefix for category. When prefix already belongs to another category the first owner is kept and
// the collision is returned.
func (t *trie) insert(prefix string, category int) (collision, bool) {
	n := t.root
	for i := 0; i < len(prefix); i++ {
		if n.children == nil {
			n.children = map[byte]*trieNode{}
		}
		child, ok := n.children[prefix[i]]
		if !ok {
			child = newTrieNode()
			n.children[prefix[i]] = child
		}
		n = child
	}
	if n.category == -1 {
		n.category = category
		return collision{}, false
	}
	if n.category != category {
		return collision{prefix: prefix, winner: n.category, loser: category}, true
	}
	return collision{}, false
}

// match returns the category of the longest prefix of code.
func (t *trie) match(code string) (int, bool) {
	n := t.root
	found := -1
	for i := 0; i < len(code); i++ {
		child, ok := n.children[code[i]]
		if !ok {
			break
		}
		n = child
		if n.category != -1 {
			found = n.category
		}
	}
	return found, found != -1
}

// nested reports every prefix that extends a shorter prefix owned by a different category.
func (t *trie) nested() []collision {
	var result []collision
	var walk func(n *trieNode, path []byte, owner int)
	walk = func(n *trieNode, path []byte, owner int) {
		if n.category != -1 {
			if owner != -1 && owner != n.category {
				result = append(result, collision{prefix: string(path), winner: n.category, loser: owner, nested: true})
			}
			owner = n.category
		}
		for _, b := range sortedKeys(n.children) {
			walk(n.children[b], append(path, b), owner)
		}
	}
	walk(t.root, nil, -1)
	return result
}

func sortedKeys(m map[byte]*trieNode) []byte {
	keys := make([]byte, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
