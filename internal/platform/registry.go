package platform

// handlers in detection order
var handlers = []Handler{
	youtubeHandler{},
	facebookHandler{},
	instagramHandler{},
}

// All returns the registered handlers
func All() []Handler {
	out := make([]Handler, len(handlers))
	copy(out, handlers)
	return out
}

// Resolve returns the handler claiming a URL, or nil when no platform matches
func Resolve(url string) Handler {
	for _, h := range handlers {
		if h.Match(url) {
			return h
		}
	}
	return nil
}

// ByName returns the handler with the given platform name, or nil
func ByName(name string) Handler {
	for _, h := range handlers {
		if h.Name() == name {
			return h
		}
	}
	return nil
}
