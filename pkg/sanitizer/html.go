package sanitizer

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	notificationPolicy *bluemonday.Policy
	strictPolicy       *bluemonday.Policy
	initOnce           sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()

		// Only the elements the notification markdown can produce
		notificationPolicy = bluemonday.NewPolicy()
		notificationPolicy.AllowElements(
			"p", "br", "hr",
			"h1", "h2", "h3",
			"strong", "b", "em", "i",
			"ul", "ol", "li",
			"code", "pre", "blockquote",
		)
	})
}

// SanitizeNotificationHTML keeps the formatting tags produced by rendered
// notification markdown and strips everything else, including links,
// scripts and inline styles.
func SanitizeNotificationHTML(s string) string {
	initPolicies()
	return notificationPolicy.Sanitize(s)
}

// StripTags removes all HTML and returns escaped plain text.
func StripTags(s string) string {
	initPolicies()
	return strictPolicy.Sanitize(s)
}
