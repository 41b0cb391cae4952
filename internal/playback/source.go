package playback

// Source is one reviewable version of the clip.
type Source struct {
	Name string
	URL  string
}

// Label returns Name, or URL when the source is unnamed.
func (s Source) Label() string {
	if s.Name != "" {
		return s.Name
	}
	return s.URL
}
