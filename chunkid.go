// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ltcore

import "strings"

// ChunkID formats source into a human readable identifier no longer than
// bufflen bytes, mirroring the C original's three cases:
//
//	=literal   -> the literal, truncated on the right
//	@filename  -> the filename, prefixed with "..." if truncated on the left
//	anything   -> wrapped as [string "first-line"], truncated with "..."
func ChunkID(source string, bufflen int) string {
	if source == "" {
		return `[string ""]`
	}

	switch source[0] {
	case '=':
		body := source[1:]
		if len(body) <= bufflen {
			return body
		}
		return body[:bufflen]
	case '@':
		body := source[1:]
		if len(body) <= bufflen {
			return body
		}
		const ellipsis = "..."
		room := bufflen - len(ellipsis)
		if room < 0 {
			room = 0
		}
		return ellipsis + body[len(body)-room:]
	default:
		const pre, ret, pos = `[string "`, "...", `"]`
		room := bufflen - len(pre) - len(ret) - len(pos) - 1
		if room < 0 {
			room = 0
		}
		line := source
		if i := strings.IndexByte(source, '\n'); i >= 0 {
			line = source[:i]
		}
		if len(line) < room && line == source {
			return pre + line + pos
		}
		if len(line) > room {
			line = line[:room]
		}
		return pre + line + ret + pos
	}
}
