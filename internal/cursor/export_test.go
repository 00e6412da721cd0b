// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package cursor

// MaxRetain exports maxRetain for testing.
const MaxRetain = maxRetain

// BufCap reports the combined capacity of the token buffers of c.
func BufCap(c *Cursor) int { return cap(c.buf) + cap(c.dec) }
