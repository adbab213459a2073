// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of cc-backend.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

// MatchGlob reports whether name matches pattern, where '*' in pattern
// matches any run of characters (including none). Matching is
// case-sensitive and anchored at both ends. This is a small hand-rolled
// matcher rather than path/filepath.Match: filepath.Match treats '/' and
// a handful of shell-glob metacharacters ('?', '[...]') specially, none
// of which apply to metric-name patterns here.
func MatchGlob(pattern, name string) bool {
	// Classic two-pointer wildcard match with backtracking on the last
	// seen '*', O(len(pattern)+len(name)) amortized.
	var pIdx, nIdx int
	var starIdx = -1
	var match int

	for nIdx < len(name) {
		if pIdx < len(pattern) && (pattern[pIdx] == name[nIdx]) {
			pIdx++
			nIdx++
		} else if pIdx < len(pattern) && pattern[pIdx] == '*' {
			starIdx = pIdx
			match = nIdx
			pIdx++
		} else if starIdx != -1 {
			pIdx = starIdx + 1
			match++
			nIdx = match
		} else {
			return false
		}
	}

	for pIdx < len(pattern) && pattern[pIdx] == '*' {
		pIdx++
	}

	return pIdx == len(pattern)
}
