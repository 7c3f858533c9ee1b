package tumblr

// Narrows each post to the content blocks whose type is in allowed.
//
// In strict mode a post is dropped entirely unless every one of its original blocks already had an allowed type; otherwise every post is kept, possibly with an empty body. Input posts are not modified: the result holds shallow copies with new content slices. Blocks of a type this package does not recognize never match.
func FilterContent(posts []*Post, allowed []ContentType, strict bool) []*Post {
	set := make(map[ContentType]bool, len(allowed))
	for _, ct := range allowed {
		set[ct] = true
	}

	out := make([]*Post, 0, len(posts))
	for _, p := range posts {
		if p == nil {
			continue
		}
		if strict && !allBlocksAllowed(p, set) {
			continue
		}
		out = append(out, filterPost(p, set))
	}
	return out
}

// Returns a shallow copy of p keeping only blocks whose type is in allowed.
func FilterPost(p *Post, allowed ...ContentType) *Post {
	set := make(map[ContentType]bool, len(allowed))
	for _, ct := range allowed {
		set[ct] = true
	}
	return filterPost(p, set)
}

// Keeps posts with a timestamp strictly after the cutoff (unix seconds). A zero cutoff keeps everything.
func AfterCutoff(posts []*Post, after int64) []*Post {
	if after == 0 {
		return posts
	}
	out := make([]*Post, 0, len(posts))
	for _, p := range posts {
		if p != nil && p.Timestamp > after {
			out = append(out, p)
		}
	}
	return out
}

func allBlocksAllowed(p *Post, set map[ContentType]bool) bool {
	for _, c := range p.Content {
		if c == nil || !known(c) || !set[c.Type()] {
			return false
		}
	}
	return true
}

func filterPost(p *Post, set map[ContentType]bool) *Post {
	cp := *p
	cp.Content = make([]*Content, 0, len(p.Content))
	for _, c := range p.Content {
		if c != nil && known(c) && set[c.Type()] {
			cp.Content = append(cp.Content, c)
		}
	}
	return &cp
}

func known(c *Content) bool {
	return c.unknown == nil
}
